package main

import (
	"time"

	"lend/config"
	loanController "lend/controllers/loan"
	onboardingController "lend/controllers/onboarding"
	"lend/database"
	loanRoutes "lend/routers/loanRoutes"
	onboardingRoutes "lend/routers/onboardingRoutes"
	"lend/store"
	"lend/utils"
	"lend/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// The onboarding engine runs over the persistent key-value collaborator
	engine := workflow.NewManager(
		store.NewGormStore(database.Database.Db),
		workflow.WithCountdown(config.AppConfig.ResendCountdownSec),
		workflow.WithDwell(time.Duration(config.AppConfig.DisbursalDwellSec)*time.Second),
	)
	onboardingController.Engine = engine
	loanController.Engine = engine

	utils.StartEMIReminderScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded KYC documents
	app.Static("/uploads", config.AppConfig.UploadDir)

	onboardingRoutes.SetupOnboardingRoutes(app)
	loanRoutes.SetupLoanRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
