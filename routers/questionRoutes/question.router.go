package questionRoutes

import (
	controllers "quizroom/controllers/question"
	"quizroom/middleware"
	"quizroom/models"
	validators "quizroom/validators/question"

	"github.com/gofiber/fiber/v2"
)

// SetupQuestionRoutes sets up direct question CRUD routes
func SetupQuestionRoutes(app *fiber.App) {
	group := app.Group("/questions", middleware.JWTMiddleware)

	group.Post("/", middleware.RequireRole(models.RoleTeacher), validators.CreateQuestion(), controllers.CreateQuestion)
	group.Get("/quiz/:quizId", validators.QuizID(), controllers.GetQuestionsByQuiz)
	group.Get("/:id", validators.QuestionID(), controllers.GetQuestion)
	group.Put("/:id", middleware.RequireRole(models.RoleTeacher), validators.UpdateQuestion(), controllers.UpdateQuestion)
	group.Delete("/:id", middleware.RequireRole(models.RoleTeacher), validators.QuestionID(), controllers.DeleteQuestion)
}
