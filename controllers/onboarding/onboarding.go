package onboardingController

import (
	"errors"
	"log"

	"lend/appstate"
	"lend/config"
	"lend/emi"
	"lend/middleware"
	"lend/models"
	"lend/utils"
	"lend/workflow"

	"github.com/gofiber/fiber/v2"
)

// Engine is the shared workflow manager, wired in main.
var Engine *workflow.Manager

func machineFromCtx(c *fiber.Ctx) (*workflow.Machine, bool) {
	mobile, ok := c.Locals("mobile").(string)
	if !ok || mobile == "" {
		return nil, false
	}
	return Engine.Machine(mobile), true
}

// handleWorkflowError maps engine failures onto the response envelope. Gate
// failures return the full field report; store failures are retryable.
func handleWorkflowError(c *fiber.Ctx, err error) error {
	var incomplete *workflow.IncompleteStageError
	if errors.As(err, &incomplete) {
		return middleware.ValidationErrorResponse(c, incomplete.Fields)
	}

	var storeErr *appstate.StoreError
	if errors.As(err, &storeErr) {
		log.Printf("Store error: %v", storeErr)
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Could not save your progress. Please try again.", nil)
	}

	if errors.Is(err, workflow.ErrOTPMismatch) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Incorrect OTP, try again.", nil)
	}
	if errors.Is(err, workflow.ErrNoChallenge) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "No OTP pending. Request a new one.", nil)
	}
	if errors.Is(err, emi.ErrInvalidTenor) {
		return middleware.ValidationErrorResponse(c, map[string]string{"months": "Tenure must be at least 1 month!"})
	}

	log.Printf("Onboarding error: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
}

// SendLoginOTP issues (or reissues) the login challenge for a mobile number.
func SendLoginOTP(c *fiber.Ctx) error {
	mobile, ok := c.Locals("validatedMobile").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	machine := Engine.Machine(mobile)
	challenge, err := machine.Start()
	if err != nil {
		return handleWorkflowError(c, err)
	}

	if err := utils.SendOTPToMobile(mobile, challenge.Code); err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to mobile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", fiber.Map{
		"resendIn": machine.ResendRemaining(),
	})
}

// VerifyLoginOTP verifies the login challenge and routes the session:
// first-time borrowers to basic info, known identities without a loan to
// professional info, returning borrowers with a loan to the dashboard.
func VerifyLoginOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOtp").(*struct {
		Mobile string `json:"mobile"`
		Code   string `json:"code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	machine := Engine.Machine(reqData.Mobile)
	stage, err := machine.VerifyLogin(reqData.Code)
	if err != nil {
		return handleWorkflowError(c, err)
	}

	token, err := middleware.GenerateJWT(reqData.Mobile)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP Verified!", fiber.Map{
		"token": token,
		"stage": stage,
	})
}

// CancelLoginVerification discards the in-flight OTP prompt when the borrower
// closes it. Persisted state and the pending challenge are untouched; only
// the resend countdown stops.
func CancelLoginVerification(c *fiber.Ctx) error {
	mobile, ok := c.Locals("validatedMobile").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	Engine.Machine(mobile).CancelPendingVerification()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification cancelled.", nil)
}

// CurrentStage reports where a resumed session should land.
func CurrentStage(c *fiber.Ctx) error {
	machine, ok := machineFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	stage, err := machine.CurrentStage()
	if err != nil {
		return handleWorkflowError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Current stage.", fiber.Map{"stage": stage})
}

// SendAadhaarOTP issues the Aadhaar verification challenge.
func SendAadhaarOTP(c *fiber.Ctx) error {
	machine, ok := machineFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	aadhaar, ok := c.Locals("validatedAadhaar").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	challenge, err := machine.SendAadhaarOTP(aadhaar)
	if err != nil {
		return handleWorkflowError(c, err)
	}

	if err := utils.SendOTPToMobile(machine.Mobile(), challenge.Code); err != nil {
		log.Printf("Error while sending Aadhaar OTP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP to mobile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

// VerifyAadhaarOTP consumes the Aadhaar challenge on an exact code match.
func VerifyAadhaarOTP(c *fiber.Ctx) error {
	machine, ok := machineFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Code string `json:"code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := machine.VerifyAadhaarOTP(reqData.Code); err != nil {
		return handleWorkflowError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Aadhaar Verified Successfully!", nil)
}

// SubmitBasicInfo completes the basic-info stage: identity + bank details,
// with PAN and Aadhaar verification recomputed server-side.
func SubmitBasicInfo(c *fiber.Ctx) error {
	machine, ok := machineFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedBasicInfo").(*models.BasicInfoData)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := machine.SubmitBasicInfo(reqData); err != nil {
		return handleWorkflowError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Basic information saved.", fiber.Map{
		"stage": workflow.StageProfessionalInfo,
	})
}

// SubmitProfessionalInfo completes the professional-info stage.
func SubmitProfessionalInfo(c *fiber.Ctx) error {
	machine, ok := machineFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedProfessionalInfo").(*models.EmploymentProfile)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := machine.SubmitProfessionalInfo(reqData); err != nil {
		return handleWorkflowError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Professional details saved.", fiber.Map{
		"stage": workflow.StageKycUpload,
	})
}

// UploadKycDocument stores one file into its KYC category slot. Each slot
// holds a single document; re-uploading replaces it.
func UploadKycDocument(c *fiber.Ctx) error {
	machine, ok := machineFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	category := c.FormValue("category")
	file, err := c.FormFile("document")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document file is required!", nil)
	}

	doc, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save document!", nil)
	}

	if err := machine.AttachKycDocument(category, doc); err != nil {
		if errors.Is(err, workflow.ErrUnknownCategory) {
			return middleware.ValidationErrorResponse(c, map[string]string{"category": "Unknown document category!"})
		}
		return handleWorkflowError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document uploaded.", doc)
}

// SubmitKyc gates on all four document slots and moves the session to
// profile analysis, which approves unconditionally.
func SubmitKyc(c *fiber.Ctx) error {
	machine, ok := machineFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := machine.SubmitKyc(); err != nil {
		return handleWorkflowError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "KYC submitted. Profile analysis started.", fiber.Map{
		"stage": workflow.StageProfileAnalysis,
	})
}

// Disburse computes the EMI for the chosen terms, persists the loan and
// completes origination. The approval email goes out asynchronously.
func Disburse(c *fiber.Ctx) error {
	machine, ok := machineFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedLoanTerms").(*struct {
		Amount float64 `json:"amount"`
		Months int     `json:"months"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	loan, err := machine.Disburse(reqData.Amount, reqData.Months)
	if err != nil {
		return handleWorkflowError(c, err)
	}

	go func(mobile string, loan models.LoanRecord) {
		state, err := Engine.Store(mobile).Load()
		if err != nil || state.BasicInfo == nil {
			return
		}
		if err := utils.SendLoanApprovalEmail(state.BasicInfo.Email, state.BasicInfo.FullName, loan); err != nil {
			log.Printf("Error sending approval email: %v", err)
		}
	}(machine.Mobile(), *loan)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Loan disbursed.", fiber.Map{
		"loan":  loan,
		"stage": workflow.StageDisbursed,
	})
}

// Quote calculates an EMI preview for the sliders without persisting
// anything.
func Quote(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLoanTerms").(*struct {
		Amount float64 `json:"amount"`
		Months int     `json:"months"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	installment, err := emi.Calculate(reqData.Amount, reqData.Months)
	if err != nil {
		return handleWorkflowError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Estimated Monthly EMI.", fiber.Map{
		"emi":          installment,
		"interestRate": emi.MonthlyRate * 100,
	})
}
