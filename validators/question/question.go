package questionValidator

import (
	"strconv"
	"strings"

	"quizroom/middleware"
	"quizroom/models"
	"quizroom/validators"

	"github.com/gofiber/fiber/v2"
)

// QuestionID validates the :id route param and stores it as a uint.
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		c.Locals("questionID", uint(id))
		return c.Next()
	}
}

// QuizID validates the :quizId route param.
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("quizId"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Quiz ID!", nil)
		}

		c.Locals("quizID", uint(id))
		return c.Next()
	}
}

// CreateQuestion validator middleware
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.CreateQuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		if reqData.CorrectAnswer != nil && *reqData.CorrectAnswer >= len(reqData.Options) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"correctAnswer": "Correct answer index is out of option bounds!",
			})
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// UpdateQuestion validator middleware
func UpdateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		reqData := new(models.UpdateQuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		// Bounds against the incoming option list; the controller
		// re-checks against the stored options when only the index moves.
		if reqData.CorrectAnswer != nil && len(reqData.Options) > 0 && *reqData.CorrectAnswer >= len(reqData.Options) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"correctAnswer": "Correct answer index is out of option bounds!",
			})
		}

		c.Locals("questionID", uint(id))
		c.Locals("validatedQuestionUpdate", reqData)
		return c.Next()
	}
}
