package quizRoutes

import (
	controllers "quizroom/controllers/quiz"
	"quizroom/middleware"
	"quizroom/models"
	validators "quizroom/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz authoring, submission and leaderboard routes
func SetupQuizRoutes(app *fiber.App) {
	group := app.Group("/quizzes", middleware.JWTMiddleware)

	group.Post("/", middleware.RequireRole(models.RoleTeacher), validators.CreateQuiz(), controllers.CreateQuiz)
	group.Get("/teacher", middleware.RequireRole(models.RoleTeacher), controllers.GetTeacherQuizzes)
	group.Get("/classroom/:classroomId", validators.ClassroomID(), controllers.GetQuizzesByClassroom)
	group.Get("/:id", validators.QuizID(), controllers.GetQuizByID)
	group.Put("/:id", middleware.RequireRole(models.RoleTeacher), validators.UpdateQuiz(), controllers.UpdateQuiz)
	group.Delete("/:id", middleware.RequireRole(models.RoleTeacher), validators.QuizID(), controllers.DeleteQuiz)
	group.Post("/:id/submit", middleware.RequireRole(models.RoleStudent), validators.SubmitQuiz(), controllers.SubmitQuiz)
	group.Get("/:id/leaderboard", validators.QuizID(), controllers.GetQuizLeaderboard)
}
