package quizController

import (
	"encoding/json"
	"log"
	"time"

	"quizroom/database"
	"quizroom/middleware"
	"quizroom/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// buildQuestions maps an inline question batch onto question records
// tagged with the quiz id. Option lists are stored as JSON arrays.
func buildQuestions(quizID uint, inputs []models.QuestionInput) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(inputs))
	for _, in := range inputs {
		optionsJSON, err := json.Marshal(in.Options)
		if err != nil {
			return nil, err
		}
		questions = append(questions, models.Question{
			QuizID:        quizID,
			Text:          in.Text,
			Options:       datatypes.JSON(optionsJSON),
			CorrectAnswer: *in.CorrectAnswer,
		})
	}
	return questions, nil
}

// CreateQuiz creates a quiz in an existing classroom, owned by the
// acting teacher. An inline question list is bulk-inserted with the new
// quiz id.
func CreateQuiz(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*models.CreateQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var classroom models.Classroom
	if err := database.Database.Db.First(&classroom, reqData.ClassroomID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Classroom not found!", nil)
	}

	showResults := true
	if reqData.ShowResults != nil {
		showResults = *reqData.ShowResults
	}

	quiz := models.Quiz{
		Title:            reqData.Title,
		ClassroomID:      classroom.ID,
		TeacherID:        userID,
		Duration:         reqData.Duration,
		StartsOn:         reqData.StartsOn,
		EndsOn:           reqData.EndsOn,
		IsActive:         true,
		Instructions:     reqData.Instructions,
		PassScore:        reqData.PassScore,
		ShuffleQuestions: reqData.ShuffleQuestions,
		ShowResults:      showResults,
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		if len(reqData.Questions) > 0 {
			questions, err := buildQuestions(quiz.ID, reqData.Questions)
			if err != nil {
				return err
			}
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
			quiz.Questions = questions
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// GetTeacherQuizzes lists quizzes owned by the acting teacher.
func GetTeacherQuizzes(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var quizzes []models.Quiz
	err := database.Database.Db.
		Where("teacher_id = ?", userID).
		Preload("Classroom").
		Preload("Questions").
		Order("created_at desc").
		Find(&quizzes).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.ListResponse(c, fiber.StatusOK, "Quizzes fetched successfully!", len(quizzes), quizzes)
}

// GetQuizzesByClassroom lists a classroom's quizzes; an empty result is
// NotFound.
func GetQuizzesByClassroom(c *fiber.Ctx) error {
	classroomID := c.Locals("classroomID").(uint)

	var quizzes []models.Quiz
	err := database.Database.Db.
		Where("classroom_id = ?", classroomID).
		Preload("Teacher").
		Preload("Questions").
		Find(&quizzes).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	if len(quizzes) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No quizzes found for this classroom!", nil)
	}

	return middleware.ListResponse(c, fiber.StatusOK, "Quizzes fetched successfully!", len(quizzes), quizzes)
}

// GetQuizByID returns a quiz with populated questions and its derived
// scheduling status, evaluated at read time.
func GetQuizByID(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	var quiz models.Quiz
	err := database.Database.Db.
		Preload("Classroom").
		Preload("Teacher").
		Preload("Questions").
		First(&quiz, quizID).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":   quiz,
		"status": quiz.Status(time.Now()),
	})
}

// UpdateQuiz updates the title and, when a question list is supplied,
// replaces every existing question with the new list. The replace is
// destructive and transactional: delete all, then bulk insert.
func UpdateQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	reqData, ok := c.Locals("validatedQuizUpdate").(*models.UpdateQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !middleware.Owns(c, quiz.TeacherID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this quiz!", nil)
	}

	if reqData.Title != "" {
		quiz.Title = reqData.Title
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if len(reqData.Questions) > 0 {
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
				return err
			}
			questions, err := buildQuestions(quiz.ID, reqData.Questions)
			if err != nil {
				return err
			}
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
			quiz.Questions = questions
		}
		return tx.Save(&quiz).Error
	})
	if err != nil {
		log.Printf("Error updating quiz %d: %v", quiz.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// DeleteQuiz deletes the quiz and cascades to its questions. Only the
// owning teacher may delete.
func DeleteQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !middleware.Owns(c, quiz.TeacherID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this quiz!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
	if err != nil {
		log.Printf("Error deleting quiz %d: %v", quiz.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

// SubmitQuiz scores a student's answers and appends a submission.
//
// Scoring is positional: the answer at index i is compared against the
// question at index i in stored order. The questionId each answer
// carries is persisted but deliberately ignored for scoring; a client
// submitting answers out of question order is scored against the wrong
// questions. Known quirk, kept until product says otherwise.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	reqData, ok := c.Locals("validatedSubmission").(*models.SubmitQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, quizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []models.Question
	if err := database.Database.Db.
		Where("quiz_id = ?", quiz.ID).
		Order("id asc").
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	score := 0
	for i, answer := range reqData.Answers {
		if i >= len(questions) {
			break
		}
		if answer.SelectedOption == questions[i].CorrectAnswer {
			score++
		}
	}

	answersJSON, err := json.Marshal(reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers payload!", nil)
	}

	// Repeat submissions are allowed; every attempt appends a new row.
	submission := models.Submission{
		QuizID:      quiz.ID,
		StudentID:   userID,
		Answers:     datatypes.JSON(answersJSON),
		Score:       score,
		SubmittedAt: time.Now(),
	}
	if err := database.Database.Db.Create(&submission).Error; err != nil {
		log.Printf("Error saving submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", submission)
}

// GetQuizLeaderboard returns all submissions for a quiz sorted by score
// descending, submission time ascending as the deterministic tie-break.
func GetQuizLeaderboard(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	var submissions []models.Submission
	err := database.Database.Db.
		Where("quiz_id = ?", quizID).
		Preload("Student").
		Order("score desc, submitted_at asc").
		Find(&submissions).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	if len(submissions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No submissions found for this quiz!", nil)
	}

	leaderboard := make([]models.LeaderboardEntry, 0, len(submissions))
	for _, submission := range submissions {
		entry := models.LeaderboardEntry{
			Score:       submission.Score,
			SubmittedAt: submission.SubmittedAt,
		}
		if submission.Student != nil {
			entry.Student = models.LeaderboardStudent{
				ID:    submission.Student.ID,
				Name:  submission.Student.FullName(),
				Email: submission.Student.Email,
			}
		}
		leaderboard = append(leaderboard, entry)
	}

	return middleware.ListResponse(c, fiber.StatusOK, "Leaderboard fetched successfully!", len(leaderboard), leaderboard)
}
