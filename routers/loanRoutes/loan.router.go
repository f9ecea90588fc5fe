package loanRoutes

import (
	loanControllers "lend/controllers/loan"
	"lend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupLoanRoutes(app *fiber.App) {
	loanGroup := app.Group("/loan")

	loanGroup.Get("/dashboard", middleware.JWTMiddleware, loanControllers.Dashboard)
	loanGroup.Get("/list", middleware.JWTMiddleware, loanControllers.LoanList)
}
