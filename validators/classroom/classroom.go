package classroomValidator

import (
	"strconv"
	"strings"

	"quizroom/middleware"
	"quizroom/models"
	"quizroom/validators"

	"github.com/gofiber/fiber/v2"
)

// ClassroomID validates the :id route param and stores it as a uint.
func ClassroomID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Classroom ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Classroom ID!", nil)
		}

		c.Locals("classroomID", uint(id))
		return c.Next()
	}
}

// CreateClassroom validator middleware
func CreateClassroom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.CreateClassroomRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		c.Locals("validatedClassroom", reqData)
		return c.Next()
	}
}

// UpdateClassroom validator middleware
func UpdateClassroom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Classroom ID!", nil)
		}

		reqData := new(models.UpdateClassroomRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		c.Locals("classroomID", uint(id))
		c.Locals("validatedClassroomUpdate", reqData)
		return c.Next()
	}
}

// JoinClassroom validator middleware
func JoinClassroom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.JoinClassroomRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		c.Locals("validatedJoin", reqData)
		return c.Next()
	}
}

// RemoveStudent validator middleware
func RemoveStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Classroom ID!", nil)
		}

		reqData := new(models.RemoveStudentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.Translate(err))
		}

		c.Locals("classroomID", uint(id))
		c.Locals("validatedRemoveStudent", reqData)
		return c.Next()
	}
}
