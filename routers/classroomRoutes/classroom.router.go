package classroomRoutes

import (
	controllers "quizroom/controllers/classroom"
	"quizroom/middleware"
	"quizroom/models"
	validators "quizroom/validators/classroom"

	"github.com/gofiber/fiber/v2"
)

// SetupClassroomRoutes sets up classroom and membership routes
func SetupClassroomRoutes(app *fiber.App) {
	group := app.Group("/classrooms", middleware.JWTMiddleware)

	group.Post("/", middleware.RequireRole(models.RoleTeacher), validators.CreateClassroom(), controllers.CreateClassroom)
	group.Get("/teacher", middleware.RequireRole(models.RoleTeacher), controllers.GetTeacherClassrooms)
	group.Get("/student", middleware.RequireRole(models.RoleStudent), controllers.GetStudentClassrooms)
	group.Post("/join", middleware.RequireRole(models.RoleStudent), validators.JoinClassroom(), controllers.JoinClassroom)
	group.Get("/:id", validators.ClassroomID(), controllers.GetClassroomByID)
	group.Put("/:id", middleware.RequireRole(models.RoleTeacher), validators.UpdateClassroom(), controllers.UpdateClassroom)
	group.Delete("/:id", middleware.RequireRole(models.RoleTeacher), validators.ClassroomID(), controllers.DeleteClassroom)
	group.Put("/:id/remove-student", middleware.RequireRole(models.RoleTeacher), validators.RemoveStudent(), controllers.RemoveStudent)
}
