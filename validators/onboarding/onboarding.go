package onboardingValidator

import (
	"lend/middleware"
	"lend/models"
	"lend/verification"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SendOTP validator middleware
func SendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Mobile string `json:"mobile"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Mobile
		if reqData.Mobile == "" || !verification.ValidateMobile(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMobile", reqData.Mobile)
		return c.Next()
	}
}

// VerifyOTP validator middleware
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Mobile string `json:"mobile"`
			Code   string `json:"code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Mobile == "" || !verification.ValidateMobile(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		// Validate OTP code
		if len(reqData.Code) != 6 {
			errors["code"] = "Enter 6-digit OTP!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOtp", reqData)
		return c.Next()
	}
}

// BasicInfo validator middleware. Field-level format problems are reported
// here, field by field; completion gating happens in the workflow.
func BasicInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.BasicInfoData)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.FullName)) == 0 {
			errors["fullName"] = "Full name is required!"
		}
		if reqData.Email != "" && !verification.ValidateEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if reqData.Aadhaar != "" && !verification.ValidateAadhaarFormat(reqData.Aadhaar) {
			errors["aadhar"] = "Enter 12-digit Aadhaar."
		}
		if reqData.AccountNumber != "" {
			if msg := verification.ValidateAccountNumber(reqData.AccountNumber); msg != "" {
				errors["accountNumber"] = msg
			}
		}
		if reqData.IFSC != "" {
			if _, msg := verification.ValidateIFSC(reqData.IFSC); msg != "" {
				errors["ifsc"] = msg
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBasicInfo", reqData)
		return c.Next()
	}
}

// AadhaarOTP validator middleware for the send request
func AadhaarOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Aadhaar string `json:"aadhar"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !verification.ValidateAadhaarFormat(reqData.Aadhaar) {
			errors["aadhar"] = "Enter 12-digit Aadhaar."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAadhaar", reqData.Aadhaar)
		return c.Next()
	}
}

// ProfessionalInfo validator middleware
func ProfessionalInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.EmploymentProfile)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EmploymentType != models.EmploymentSalaried && reqData.EmploymentType != models.EmploymentSelfEmployed {
			errors["employmentType"] = "Select an employment type!"
		}
		if reqData.MonthlyIncome <= 0 {
			errors["monthlyIncome"] = "Monthly income is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfessionalInfo", reqData)
		return c.Next()
	}
}

// LoanTerms validator middleware
func LoanTerms() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount float64 `json:"amount"`
			Months int     `json:"months"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Loan amount is required!"
		}
		if reqData.Months < 1 {
			errors["months"] = "Tenure must be at least 1 month!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLoanTerms", reqData)
		return c.Next()
	}
}
