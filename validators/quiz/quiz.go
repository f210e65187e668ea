package quizValidator

import (
	"fmt"
	"strconv"
	"strings"

	"quizroom/middleware"
	"quizroom/models"
	"quizroom/validators"

	"github.com/gofiber/fiber/v2"
)

// QuizID validates the :id route param and stores it as a uint.
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		c.Locals("quizID", uint(id))
		return c.Next()
	}
}

// ClassroomID validates the :classroomId route param.
func ClassroomID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("classroomId"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Classroom ID!", nil)
		}

		c.Locals("classroomID", uint(id))
		return c.Next()
	}
}

// questionErrors checks the constraints the struct tags cannot express:
// the correct-answer index must point inside the option list. Out of
// range indexes are rejected at write time.
func questionErrors(questions []models.QuestionInput) map[string]string {
	errs := make(map[string]string)
	for i, q := range questions {
		if q.CorrectAnswer != nil && *q.CorrectAnswer >= len(q.Options) {
			errs[fmt.Sprintf("questions[%d].correctAnswer", i)] = "Correct answer index is out of option bounds!"
		}
	}
	return errs
}

// CreateQuiz validator middleware
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.CreateQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		errs := questionErrors(reqData.Questions)
		if reqData.EndsOn != nil && !reqData.EndsOn.After(reqData.StartsOn) {
			errs["endsOn"] = "End date must be after start date!"
		}
		if len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// UpdateQuiz validator middleware
func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		reqData := new(models.UpdateQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		if errs := questionErrors(reqData.Questions); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("quizID", uint(id))
		c.Locals("validatedQuizUpdate", reqData)
		return c.Next()
	}
}

// SubmitQuiz validator middleware
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		reqData := new(models.SubmitQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		c.Locals("quizID", uint(id))
		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
