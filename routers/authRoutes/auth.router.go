package authRoutes

import (
	controllers "quizroom/controllers/auth"
	"quizroom/middleware"
	validators "quizroom/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and credential recovery
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", validators.Register(), controllers.Register)
	authGroup.Get("/confirm-email", controllers.ConfirmEmail)
	authGroup.Post("/login", validators.Login(), controllers.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, controllers.Me)
	authGroup.Post("/forgot-password", validators.ForgotPassword(), controllers.ForgotPassword)
	authGroup.Put("/reset-password/:token", validators.ResetPassword(), controllers.ResetPassword)
}
