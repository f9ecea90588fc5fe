package models

// ApplicationState is the aggregate view of one borrower's onboarding
// progress. Sub-records are persisted independently and composed on load;
// nil means the stage that writes that record has not completed yet.
type ApplicationState struct {
	BasicInfo  *BasicInfoData
	Employment *EmploymentProfile
	Documents  *KycDocuments
	Loan       *LoanRecord

	LoginOTP   *OTPChallenge
	AadhaarOTP *OTPChallenge
}
