package workflow

import (
	"lend/models"
	"lend/verification"
)

// Gating predicates. Each one is pure: it inspects its inputs, reports every
// failing field at once, and never touches persisted state. Verification
// flags are recomputed from the raw values on every evaluation; a PAN or
// Aadhaar edited after verification loses its verified status here.

// BasicInfoGate checks the identity + bank record against the BasicInfo
// completion rules. aadhaarOTP is the borrower's Aadhaar challenge, consulted
// to recompute aadhaarVerified for the submitted number.
func BasicInfoGate(data *models.BasicInfoData, aadhaarOTP *models.OTPChallenge) *IncompleteStageError {
	incomplete := newIncomplete(StageBasicInfo)

	if data.FullName == "" {
		incomplete.add("fullName", "Full name is required!")
	}
	if data.DOB == "" {
		incomplete.add("dob", "Date of birth is required!")
	}
	if data.Email == "" || !verification.ValidateEmail(data.Email) {
		incomplete.add("email", "Invalid email!")
	}

	if _, verified := verification.ValidatePAN(data.PAN); !verified {
		incomplete.add("pan", "PAN is not verified!")
	}
	if !aadhaarVerified(data.Aadhaar, aadhaarOTP) {
		incomplete.add("aadhar", "Aadhaar is not verified!")
	}

	if data.AccountNumber == "" {
		incomplete.add("accountNumber", "Account number is required!")
	} else if msg := verification.ValidateAccountNumber(data.AccountNumber); msg != "" {
		incomplete.add("accountNumber", msg)
	}
	if data.IFSC == "" {
		incomplete.add("ifsc", "IFSC code is required!")
	} else if _, msg := verification.ValidateIFSC(data.IFSC); msg != "" {
		incomplete.add("ifsc", msg)
	}
	if data.BankName == "" {
		incomplete.add("bankName", "Bank name is required!")
	}
	if data.Branch == "" {
		incomplete.add("branch", "Branch is required!")
	}

	return incomplete.orNil()
}

// aadhaarVerified recomputes the Aadhaar verification flag: the number must
// be well formed and must be the exact number a consumed OTP challenge
// verified. Changing the number after verification resets the flag.
func aadhaarVerified(aadhaar string, challenge *models.OTPChallenge) bool {
	if !verification.ValidateAadhaarFormat(aadhaar) {
		return false
	}
	return challenge != nil && challenge.Consumed && challenge.Aadhaar == aadhaar
}

// ProfessionalInfoGate checks the employment record: a type must be chosen,
// income present, company name for the salaried, and the document list for
// the chosen type non-empty.
func ProfessionalInfoGate(profile *models.EmploymentProfile) *IncompleteStageError {
	incomplete := newIncomplete(StageProfessionalInfo)

	switch profile.EmploymentType {
	case models.EmploymentSalaried:
		if profile.CompanyName == "" {
			incomplete.add("companyName", "Company name is required!")
		}
	case models.EmploymentSelfEmployed:
		// no company required
	default:
		incomplete.add("employmentType", "Select an employment type!")
	}

	if profile.MonthlyIncome <= 0 {
		incomplete.add("monthlyIncome", "Monthly income is required!")
	}
	if len(profile.Documents) == 0 {
		incomplete.add("documents", "Upload at least one document!")
	}

	return incomplete.orNil()
}

// KycGate checks that all four document slots are populated.
func KycGate(docs *models.KycDocuments) *IncompleteStageError {
	incomplete := newIncomplete(StageKycUpload)

	if docs == nil {
		docs = &models.KycDocuments{}
	}
	for _, category := range docs.Missing() {
		incomplete.add(category, "Document is required!")
	}

	return incomplete.orNil()
}

// Stage-order prerequisites. The mobile client made out-of-order stages
// unreachable through its navigation stack; on the server the persisted
// record of the previous stage is the proof it completed.

func professionalInfoPrereq(state *models.ApplicationState) *IncompleteStageError {
	incomplete := newIncomplete(StageBasicInfo)
	if state.BasicInfo == nil {
		incomplete.add("basicInfo", "Complete basic information first!")
	}
	return incomplete.orNil()
}

func kycPrereq(state *models.ApplicationState) *IncompleteStageError {
	incomplete := newIncomplete(StageProfessionalInfo)
	if state.BasicInfo == nil {
		incomplete.add("basicInfo", "Complete basic information first!")
	}
	if state.Employment == nil {
		incomplete.add("professionalInfo", "Complete professional information first!")
	}
	return incomplete.orNil()
}

func disbursalPrereq(state *models.ApplicationState) *IncompleteStageError {
	incomplete := newIncomplete(StageKycUpload)
	if state.BasicInfo == nil {
		incomplete.add("basicInfo", "Complete basic information first!")
	}
	if state.Employment == nil {
		incomplete.add("professionalInfo", "Complete professional information first!")
	}
	if state.Documents == nil || !state.Documents.Complete() {
		incomplete.add("kycDocuments", "Complete KYC document upload first!")
	}
	return incomplete.orNil()
}

// RouteAfterLogin decides where a verified login lands, from persisted state
// alone. Identity match is exact mobile-number equality.
func RouteAfterLogin(state *models.ApplicationState, mobile string) Stage {
	if state.BasicInfo != nil && state.BasicInfo.Mobile == mobile {
		if state.Loan != nil {
			return StageDashboard
		}
		return StageProfessionalInfo
	}
	return StageBasicInfo
}
