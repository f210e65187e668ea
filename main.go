package main

import (
	"log"

	"quizroom/config"
	"quizroom/database"
	authRoutes "quizroom/routers/authRoutes"
	classroomRoutes "quizroom/routers/classroomRoutes"
	questionRoutes "quizroom/routers/questionRoutes"
	quizRoutes "quizroom/routers/quizRoutes"
	"quizroom/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.StartTokenCleanup()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "Hello from quiz app!"})
	})

	authRoutes.SetupAuthRoutes(app)
	classroomRoutes.SetupClassroomRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
