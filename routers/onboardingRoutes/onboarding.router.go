package onboardingRoutes

import (
	onboardingControllers "lend/controllers/onboarding"
	"lend/middleware"
	onboardingValidators "lend/validators/onboarding"

	"github.com/gofiber/fiber/v2"
)

func SetupOnboardingRoutes(app *fiber.App) {
	onboardingGroup := app.Group("/onboarding")

	onboardingGroup.Post("/send/otp", onboardingValidators.SendOTP(), onboardingControllers.SendLoginOTP)
	onboardingGroup.Patch("/verify/otp", onboardingValidators.VerifyOTP(), onboardingControllers.VerifyLoginOTP)
	onboardingGroup.Delete("/verify/otp", onboardingValidators.SendOTP(), onboardingControllers.CancelLoginVerification)

	onboardingGroup.Get("/stage", middleware.JWTMiddleware, onboardingControllers.CurrentStage)
	onboardingGroup.Post("/basic-info", onboardingValidators.BasicInfo(), middleware.JWTMiddleware, onboardingControllers.SubmitBasicInfo)
	onboardingGroup.Post("/aadhaar/send/otp", onboardingValidators.AadhaarOTP(), middleware.JWTMiddleware, onboardingControllers.SendAadhaarOTP)
	onboardingGroup.Patch("/aadhaar/verify/otp", middleware.JWTMiddleware, onboardingControllers.VerifyAadhaarOTP)
	onboardingGroup.Post("/professional-info", onboardingValidators.ProfessionalInfo(), middleware.JWTMiddleware, onboardingControllers.SubmitProfessionalInfo)
	onboardingGroup.Post("/kyc/upload", middleware.JWTMiddleware, onboardingControllers.UploadKycDocument)
	onboardingGroup.Post("/kyc/submit", middleware.JWTMiddleware, onboardingControllers.SubmitKyc)
	onboardingGroup.Post("/loan/quote", onboardingValidators.LoanTerms(), onboardingControllers.Quote)
	onboardingGroup.Post("/loan", onboardingValidators.LoanTerms(), middleware.JWTMiddleware, onboardingControllers.Disburse)
}
