package questionController

import (
	"encoding/json"
	"log"

	"quizroom/database"
	"quizroom/middleware"
	"quizroom/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CreateQuestion adds a single question to an existing quiz.
func CreateQuestion(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuestion").(*models.CreateQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := database.Database.Db.First(&models.Quiz{}, reqData.QuizID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	optionsJSON, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options payload!", nil)
	}

	question := models.Question{
		QuizID:        reqData.QuizID,
		Text:          reqData.Text,
		Options:       datatypes.JSON(optionsJSON),
		CorrectAnswer: *reqData.CorrectAnswer,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// GetQuestionsByQuiz lists all questions of a quiz.
func GetQuestionsByQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	var questions []models.Question
	err := database.Database.Db.
		Where("quiz_id = ?", quizID).
		Order("id asc").
		Find(&questions).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.ListResponse(c, fiber.StatusOK, "Questions fetched successfully!", len(questions), questions)
}

// GetQuestion returns a single question.
func GetQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(uint)

	var question models.Question
	if err := database.Database.Db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question fetched successfully!", question)
}

// UpdateQuestion applies a partial update. The final correct-answer
// index must stay inside the final option list, whichever of the two
// the request touches.
func UpdateQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(uint)

	reqData, ok := c.Locals("validatedQuestionUpdate").(*models.UpdateQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var question models.Question
	if err := database.Database.Db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if reqData.Text != nil {
		question.Text = *reqData.Text
	}
	if len(reqData.Options) > 0 {
		optionsJSON, err := json.Marshal(reqData.Options)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options payload!", nil)
		}
		question.Options = datatypes.JSON(optionsJSON)
	}
	if reqData.CorrectAnswer != nil {
		question.CorrectAnswer = *reqData.CorrectAnswer
	}

	if question.CorrectAnswer >= len(question.OptionList()) {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"correctAnswer": "Correct answer index is out of option bounds!",
		})
	}

	if err := database.Database.Db.Save(&question).Error; err != nil {
		log.Printf("Error updating question %d: %v", question.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// DeleteQuestion removes a single question.
func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(uint)

	var question models.Question
	if err := database.Database.Db.First(&question, questionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if err := database.Database.Db.Delete(&question).Error; err != nil {
		log.Printf("Error deleting question %d: %v", question.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
