package loanController

import (
	"log"

	"lend/middleware"
	"lend/servicing"
	"lend/workflow"

	"github.com/gofiber/fiber/v2"
)

// Engine is the shared workflow manager, wired in main. The loan views only
// ever read through it.
var Engine *workflow.Manager

// Dashboard returns the servicing summary: greeting, active loan and
// repayment statistics, recomputed from the store on every call.
func Dashboard(c *fiber.Ctx) error {
	mobile, ok := c.Locals("mobile").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	state, err := Engine.Store(mobile).Load()
	if err != nil {
		log.Printf("Error loading dashboard data: %v", err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load dashboard. Please try again.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard.", servicing.BuildSummary(state))
}

// LoanList returns the loans screen: the borrower's loan plus the showcase
// records, optionally filtered by ?status=active|paid.
func LoanList(c *fiber.Ctx) error {
	mobile, ok := c.Locals("mobile").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	state, err := Engine.Store(mobile).Load()
	if err != nil {
		log.Printf("Error loading loans data: %v", err)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not load loans. Please try again.", nil)
	}

	status := c.Query("status", "all")
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loan list.", servicing.BuildLoanList(state, status))
}
