package workflow

import (
	"math/rand"
	"testing"
	"time"

	"lend/appstate"
	"lend/models"
	"lend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T, kv store.KeyValueStore, mobile string, opts ...Option) *Machine {
	t.Helper()
	base := []Option{
		WithSource(rand.New(rand.NewSource(1))),
		WithCountdown(1),
	}
	return NewMachine(appstate.New(kv, mobile), mobile, append(base, opts...)...)
}

func completeBasicInfo() *models.BasicInfoData {
	return &models.BasicInfoData{
		FullName:      "Asha Verma",
		PAN:           "ABCDE1234F",
		Aadhaar:       "123456789012",
		DOB:           "1994-02-11T00:00:00.000Z",
		Email:         "asha@example.com",
		AccountNumber: "12345678901",
		BankName:      "State Bank",
		IFSC:          "SBIN0000001",
		Branch:        "MG Road",
	}
}

// verifyAadhaar walks the OTP round-trip for the given number.
func verifyAadhaar(t *testing.T, m *Machine, aadhaar string) {
	t.Helper()
	challenge, err := m.SendAadhaarOTP(aadhaar)
	require.NoError(t, err)
	require.NoError(t, m.VerifyAadhaarOTP(challenge.Code))
}

// advanceToKyc completes the basic-info and professional-info stages.
func advanceToKyc(t *testing.T, m *Machine) {
	t.Helper()
	verifyAadhaar(t, m, "123456789012")
	require.NoError(t, m.SubmitBasicInfo(completeBasicInfo()))
	require.NoError(t, m.SubmitProfessionalInfo(&models.EmploymentProfile{
		EmploymentType: models.EmploymentSalaried,
		CompanyName:    "Acme Ltd",
		MonthlyIncome:  65000,
		Documents:      []models.Document{{ID: "d1", Name: "payslip.pdf"}},
	}))
}

// advanceToDisbursal additionally fills all four KYC slots.
func advanceToDisbursal(t *testing.T, m *Machine) {
	t.Helper()
	advanceToKyc(t, m)
	for _, category := range []string{
		models.KycCategorySelfie,
		models.KycCategoryPan,
		models.KycCategoryAadhaarFront,
		models.KycCategoryAadhaarBack,
	} {
		require.NoError(t, m.AttachKycDocument(category, &models.Document{ID: category, Name: category + ".jpg"}))
	}
	require.NoError(t, m.SubmitKyc())
}

func TestLoginOTPMismatchLeavesChallengePending(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	challenge, err := m.Start()
	require.NoError(t, err)

	_, err = m.VerifyLogin("000000")
	assert.ErrorIs(t, err, ErrOTPMismatch)

	// the same challenge still verifies afterwards
	stage, err := m.VerifyLogin(challenge.Code)
	require.NoError(t, err)
	assert.Equal(t, StageBasicInfo, stage)
}

func TestVerifyLoginRoutesFirstTimer(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	challenge, err := m.Start()
	require.NoError(t, err)

	stage, err := m.VerifyLogin(challenge.Code)
	require.NoError(t, err)
	assert.Equal(t, StageBasicInfo, stage)

	// the consumed login challenge is gone from the store
	pending, err := m.Store().LoadLoginOTP()
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestVerifyLoginResumesKnownIdentity(t *testing.T) {
	kv := store.NewMemoryStore()
	seed := appstate.New(kv, "9876543210")
	basic := completeBasicInfo()
	basic.Mobile = "9876543210"
	require.NoError(t, seed.SaveBasicInfo(basic))

	m := newTestMachine(t, kv, "9876543210")
	challenge, err := m.Start()
	require.NoError(t, err)

	stage, err := m.VerifyLogin(challenge.Code)
	require.NoError(t, err)
	assert.Equal(t, StageProfessionalInfo, stage, "identity without loan resumes at professional info")
}

func TestVerifyLoginRoutesReturningBorrower(t *testing.T) {
	kv := store.NewMemoryStore()
	seed := appstate.New(kv, "9876543210")
	basic := completeBasicInfo()
	basic.Mobile = "9876543210"
	require.NoError(t, seed.SaveBasicInfo(basic))
	require.NoError(t, seed.SaveLoan(&models.LoanRecord{Amount: 50000, Months: 12, EMI: 4584}))

	m := newTestMachine(t, kv, "9876543210")
	challenge, err := m.Start()
	require.NoError(t, err)

	stage, err := m.VerifyLogin(challenge.Code)
	require.NoError(t, err)
	assert.Equal(t, StageDashboard, stage)
}

func TestResendReplacesChallenge(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	first, err := m.Start()
	require.NoError(t, err)
	second, err := m.Start()
	require.NoError(t, err)

	if first.Code != second.Code {
		_, err = m.VerifyLogin(first.Code)
		assert.ErrorIs(t, err, ErrOTPMismatch, "a replaced code must stop verifying")
	}

	stage, err := m.VerifyLogin(second.Code)
	require.NoError(t, err)
	assert.Equal(t, StageBasicInfo, stage)
}

func TestSubmitBasicInfoIncompleteIsIdempotent(t *testing.T) {
	kv := store.NewMemoryStore()
	m := newTestMachine(t, kv, "9876543210")

	partial := &models.BasicInfoData{FullName: "Asha Verma", PAN: "BAD"}

	firstErr := m.SubmitBasicInfo(partial)
	var firstIncomplete *IncompleteStageError
	require.ErrorAs(t, firstErr, &firstIncomplete)

	secondErr := m.SubmitBasicInfo(partial)
	var secondIncomplete *IncompleteStageError
	require.ErrorAs(t, secondErr, &secondIncomplete)

	// same missing-field report on every attempt, and nothing persisted
	assert.Equal(t, firstIncomplete.Fields, secondIncomplete.Fields)

	state, err := m.Store().Load()
	require.NoError(t, err)
	assert.Nil(t, state.BasicInfo)
}

func TestSubmitBasicInfoRequiresAadhaarVerification(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	err := m.SubmitBasicInfo(completeBasicInfo())
	var incomplete *IncompleteStageError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Fields, "aadhar")
	assert.Len(t, incomplete.Fields, 1)
}

func TestSubmitBasicInfoSucceedsAfterAadhaarOTP(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")
	verifyAadhaar(t, m, "123456789012")

	require.NoError(t, m.SubmitBasicInfo(completeBasicInfo()))

	state, err := m.Store().Load()
	require.NoError(t, err)
	require.NotNil(t, state.BasicInfo)
	assert.Equal(t, "9876543210", state.BasicInfo.Mobile, "record is stamped with the session mobile")
}

func TestChangedAadhaarResetsVerification(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")
	verifyAadhaar(t, m, "123456789012")

	data := completeBasicInfo()
	data.Aadhaar = "999999999999" // different number than the one verified

	err := m.SubmitBasicInfo(data)
	var incomplete *IncompleteStageError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Fields, "aadhar")
}

func TestSubmitBasicInfoNormalizesPAN(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")
	verifyAadhaar(t, m, "123456789012")

	data := completeBasicInfo()
	data.PAN = "abcde1234f"
	data.IFSC = "sbin0000001"
	require.NoError(t, m.SubmitBasicInfo(data))

	state, err := m.Store().Load()
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", state.BasicInfo.PAN)
	assert.Equal(t, "SBIN0000001", state.BasicInfo.IFSC)
}

func TestProfessionalInfoGateSalariedNeedsCompany(t *testing.T) {
	err := ProfessionalInfoGate(&models.EmploymentProfile{
		EmploymentType: models.EmploymentSalaried,
		MonthlyIncome:  65000,
		Documents:      []models.Document{{ID: "d1"}},
	})
	require.NotNil(t, err)
	assert.Contains(t, err.Fields, "companyName")

	selfEmployed := ProfessionalInfoGate(&models.EmploymentProfile{
		EmploymentType: models.EmploymentSelfEmployed,
		MonthlyIncome:  65000,
		Documents:      []models.Document{{ID: "d1"}},
	})
	assert.Nil(t, selfEmployed)
}

func TestProfessionalInfoGateNeedsDocuments(t *testing.T) {
	err := ProfessionalInfoGate(&models.EmploymentProfile{
		EmploymentType: models.EmploymentSelfEmployed,
		MonthlyIncome:  65000,
	})
	require.NotNil(t, err)
	assert.Contains(t, err.Fields, "documents")
}

func TestKycGateReportsEveryMissingSlot(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")
	advanceToKyc(t, m)

	require.NoError(t, m.AttachKycDocument(models.KycCategorySelfie, &models.Document{ID: "s1", Name: "selfie.jpg"}))

	err := m.SubmitKyc()
	var incomplete *IncompleteStageError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Fields, models.KycCategoryPan)
	assert.Contains(t, incomplete.Fields, models.KycCategoryAadhaarFront)
	assert.Contains(t, incomplete.Fields, models.KycCategoryAadhaarBack)
	assert.NotContains(t, incomplete.Fields, models.KycCategorySelfie)
}

func TestKycCompletesWithAllFourSlots(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	advanceToDisbursal(t, m)

	assert.NoError(t, m.SubmitKyc())
}

func TestAttachKycDocumentUnknownCategory(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")
	advanceToKyc(t, m)

	err := m.AttachKycDocument("passport", &models.Document{ID: "p1"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestDisbursePersistsLoan(t *testing.T) {
	now := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210",
		WithClock(func() time.Time { return now }))
	advanceToDisbursal(t, m)

	loan, err := m.Disburse(50000, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(4584), loan.EMI)
	assert.Equal(t, 1.5, loan.InterestRate)
	assert.Equal(t, 0.015, loan.Rate)
	require.NotNil(t, loan.ApprovalDate)
	assert.Equal(t, now, *loan.ApprovalDate)

	state, err := m.Store().Load()
	require.NoError(t, err)
	require.NotNil(t, state.Loan)
	assert.Equal(t, loan.EMI, state.Loan.EMI)
}

func TestDisburseRejectsZeroTenor(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")
	advanceToDisbursal(t, m)

	_, err := m.Disburse(50000, 0)
	require.Error(t, err)

	state, loadErr := m.Store().Load()
	require.NoError(t, loadErr)
	assert.Nil(t, state.Loan, "a rejected disbursal must not persist anything")
}

func TestSubmitProfessionalInfoRequiresBasicInfo(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	err := m.SubmitProfessionalInfo(&models.EmploymentProfile{
		EmploymentType: models.EmploymentSalaried,
		CompanyName:    "Acme Ltd",
		MonthlyIncome:  65000,
		Documents:      []models.Document{{ID: "d1", Name: "payslip.pdf"}},
	})
	var incomplete *IncompleteStageError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Fields, "basicInfo")

	state, loadErr := m.Store().Load()
	require.NoError(t, loadErr)
	assert.Nil(t, state.Employment, "a skipped stage must not persist anything")
}

func TestAttachKycDocumentRequiresEarlierStages(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	err := m.AttachKycDocument(models.KycCategorySelfie, &models.Document{ID: "s1"})
	var incomplete *IncompleteStageError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Fields, "basicInfo")
	assert.Contains(t, incomplete.Fields, "professionalInfo")
}

func TestDisburseRequiresCompletedStages(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	// straight to disbursal on a fresh session, every prerequisite reported
	_, err := m.Disburse(50000, 12)
	var incomplete *IncompleteStageError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Fields, "basicInfo")
	assert.Contains(t, incomplete.Fields, "professionalInfo")
	assert.Contains(t, incomplete.Fields, "kycDocuments")

	state, loadErr := m.Store().Load()
	require.NoError(t, loadErr)
	assert.Nil(t, state.Loan)

	stage, err := m.CurrentStage()
	require.NoError(t, err)
	assert.Equal(t, StageBasicInfo, stage)
}

func TestDisburseRequiresCompletedKycSlots(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")
	advanceToKyc(t, m)

	_, err := m.Disburse(50000, 12)
	var incomplete *IncompleteStageError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Fields, "kycDocuments")
	assert.NotContains(t, incomplete.Fields, "basicInfo")
	assert.NotContains(t, incomplete.Fields, "professionalInfo")
}

func TestCancelPendingVerificationKeepsChallenge(t *testing.T) {
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210")

	challenge, err := m.Start()
	require.NoError(t, err)

	m.CancelPendingVerification()
	assert.Equal(t, 0, m.ResendRemaining())

	// closing the prompt discards nothing persisted; the code still works
	stage, err := m.VerifyLogin(challenge.Code)
	require.NoError(t, err)
	assert.Equal(t, StageBasicInfo, stage)
}

func TestCurrentStageResumesFromPersistedState(t *testing.T) {
	kv := store.NewMemoryStore()
	m := newTestMachine(t, kv, "9876543210")

	stage, err := m.CurrentStage()
	require.NoError(t, err)
	assert.Equal(t, StageBasicInfo, stage)

	verifyAadhaar(t, m, "123456789012")
	require.NoError(t, m.SubmitBasicInfo(completeBasicInfo()))
	stage, err = m.CurrentStage()
	require.NoError(t, err)
	assert.Equal(t, StageProfessionalInfo, stage)

	require.NoError(t, m.SubmitProfessionalInfo(&models.EmploymentProfile{
		EmploymentType: models.EmploymentSalaried,
		CompanyName:    "Acme Ltd",
		MonthlyIncome:  65000,
		Documents:      []models.Document{{ID: "d1", Name: "payslip.pdf"}},
	}))
	stage, err = m.CurrentStage()
	require.NoError(t, err)
	assert.Equal(t, StageKycUpload, stage)
}

func TestCurrentStageDwellThenServiced(t *testing.T) {
	now := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	clock := &now
	m := newTestMachine(t, store.NewMemoryStore(), "9876543210",
		WithClock(func() time.Time { return *clock }),
		WithDwell(5*time.Second))
	advanceToDisbursal(t, m)

	_, err := m.Disburse(50000, 12)
	require.NoError(t, err)

	stage, err := m.CurrentStage()
	require.NoError(t, err)
	assert.Equal(t, StageDisbursed, stage)

	later := now.Add(6 * time.Second)
	clock = &later
	stage, err = m.CurrentStage()
	require.NoError(t, err)
	assert.Equal(t, StageServiced, stage)
}

func TestRouteAfterLoginMobileMustMatchExactly(t *testing.T) {
	state := &models.ApplicationState{
		BasicInfo: &models.BasicInfoData{FullName: "Asha Verma", Mobile: "9876543210"},
	}
	assert.Equal(t, StageProfessionalInfo, RouteAfterLogin(state, "9876543210"))
	assert.Equal(t, StageBasicInfo, RouteAfterLogin(state, "9876543211"), "no fuzzy identity matching")
}

func TestManagerReusesMachines(t *testing.T) {
	mgr := NewManager(store.NewMemoryStore(), WithCountdown(1))

	first := mgr.Machine("9876543210")
	assert.Same(t, first, mgr.Machine("9876543210"))
	assert.NotSame(t, first, mgr.Machine("9123456780"))
}
