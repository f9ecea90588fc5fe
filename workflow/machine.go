// Package workflow implements the onboarding state machine: the ordered
// stages a borrower moves through, the gating predicates between them, and
// the returning-user shortcut. Gate evaluation is pure; only a successful
// transition writes to the application state store.
package workflow

import (
	"time"

	"lend/appstate"
	"lend/emi"
	"lend/models"
	"lend/verification"
)

// Stage is one node of the onboarding flow.
type Stage string

const (
	StageMobileEntry      Stage = "MOBILE_ENTRY"
	StageLoginOtp         Stage = "LOGIN_OTP"
	StageBasicInfo        Stage = "BASIC_INFO"
	StageProfessionalInfo Stage = "PROFESSIONAL_INFO"
	StageKycUpload        Stage = "KYC_UPLOAD"
	StageProfileAnalysis  Stage = "PROFILE_ANALYSIS"
	StageDisbursed        Stage = "DISBURSED"
	StageServiced         Stage = "SERVICED"
	StageDashboard        Stage = "DASHBOARD"
)

// Machine drives one borrower's onboarding session. All durable state lives
// in the appstate store; the machine itself only holds the resend countdown
// and injected collaborators, so it can be rebuilt from the store at any
// point (that is exactly what resume routing does).
type Machine struct {
	store  *appstate.Store
	mobile string

	src   verification.Source
	now   func() time.Time
	dwell time.Duration

	countdownSec int
	countdown    *verification.Countdown
}

// Option configures a Machine.
type Option func(*Machine)

// WithSource injects the OTP random source (seeded in tests).
func WithSource(src verification.Source) Option {
	return func(m *Machine) { m.src = src }
}

// WithClock injects the clock used for the disbursal dwell.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithDwell sets how long a fresh disbursal is reported as DISBURSED before
// it becomes SERVICED.
func WithDwell(d time.Duration) Option {
	return func(m *Machine) { m.dwell = d }
}

// WithCountdown sets the resend countdown length in seconds.
func WithCountdown(seconds int) Option {
	return func(m *Machine) { m.countdownSec = seconds }
}

// NewMachine builds a machine for one mobile number over the given store.
func NewMachine(store *appstate.Store, mobile string, opts ...Option) *Machine {
	m := &Machine{
		store:        store,
		mobile:       mobile,
		src:          verification.DefaultSource(),
		now:          time.Now,
		dwell:        5 * time.Second,
		countdownSec: 30,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mobile returns the mobile number this machine is scoped to.
func (m *Machine) Mobile() string { return m.mobile }

// Store exposes the underlying application state store.
func (m *Machine) Store() *appstate.Store { return m.store }

// Start issues (or reissues) the login OTP challenge. The previous challenge
// and its countdown are replaced atomically: the old countdown is stopped
// before the new challenge is persisted, so a stale timer can never re-arm a
// consumed challenge.
func (m *Machine) Start() (*models.OTPChallenge, error) {
	challenge := verification.NewChallenge(models.OTPPurposeLogin, m.src)
	challenge.Mobile = m.mobile

	if m.countdown != nil {
		m.countdown.Stop()
	}
	if err := m.store.SaveLoginOTP(challenge); err != nil {
		return nil, err
	}
	m.countdown = verification.NewCountdown(m.countdownSec, time.Second, nil)

	return challenge, nil
}

// ResendRemaining returns the seconds left on the resend countdown, zero when
// resend is available.
func (m *Machine) ResendRemaining() int {
	if m.countdown == nil || m.countdown.Expired() {
		return 0
	}
	return m.countdown.Remaining()
}

// VerifyLogin checks the submitted code against the pending login challenge.
// On success the challenge is consumed, removed from the store, and the
// session is routed based on persisted history: first-timers go to
// BasicInfo, a known identity without a loan resumes at ProfessionalInfo,
// and a returning borrower with a loan lands on the dashboard.
func (m *Machine) VerifyLogin(code string) (Stage, error) {
	challenge, err := m.store.LoadLoginOTP()
	if err != nil {
		return StageLoginOtp, err
	}
	if challenge == nil {
		return StageLoginOtp, ErrNoChallenge
	}
	if !verification.VerifyChallenge(challenge, code) {
		return StageLoginOtp, ErrOTPMismatch
	}

	if err := m.store.ClearLoginOTP(); err != nil {
		return StageLoginOtp, err
	}
	if m.countdown != nil {
		m.countdown.Stop()
	}

	state, err := m.store.Load()
	if err != nil {
		return StageLoginOtp, err
	}
	return RouteAfterLogin(state, m.mobile), nil
}

// SendAadhaarOTP issues the Aadhaar verification challenge for the given
// number. The number must already be well formed; the challenge remembers
// which number it verifies so a later edit invalidates the verification.
func (m *Machine) SendAadhaarOTP(aadhaar string) (*models.OTPChallenge, error) {
	if !verification.ValidateAadhaarFormat(aadhaar) {
		incomplete := newIncomplete(StageBasicInfo)
		incomplete.add("aadhar", "Enter 12-digit Aadhaar.")
		return nil, incomplete
	}

	challenge := verification.NewChallenge(models.OTPPurposeAadhaar, m.src)
	challenge.Mobile = m.mobile
	challenge.Aadhaar = aadhaar

	if err := m.store.SaveAadhaarOTP(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// VerifyAadhaarOTP checks the submitted code against the pending Aadhaar
// challenge and records the consumed challenge on success.
func (m *Machine) VerifyAadhaarOTP(code string) error {
	challenge, err := m.store.LoadAadhaarOTP()
	if err != nil {
		return err
	}
	if challenge == nil {
		return ErrNoChallenge
	}
	if !verification.VerifyChallenge(challenge, code) {
		return ErrOTPMismatch
	}
	// The consumed challenge is kept: it is the proof of which Aadhaar
	// number was verified.
	return m.store.SaveAadhaarOTP(challenge)
}

// SubmitBasicInfo runs the BasicInfo gate and persists the identity + bank
// record on success. PAN and IFSC are normalized to uppercase before the
// gate so verification is recomputed on what will actually be stored.
func (m *Machine) SubmitBasicInfo(data *models.BasicInfoData) error {
	data.PAN, _ = verification.ValidatePAN(data.PAN)
	data.IFSC, _ = verification.ValidateIFSC(data.IFSC)
	data.Mobile = m.mobile

	aadhaarOTP, err := m.store.LoadAadhaarOTP()
	if err != nil {
		return err
	}
	if incomplete := BasicInfoGate(data, aadhaarOTP); incomplete != nil {
		return incomplete
	}

	return m.store.SaveBasicInfo(data)
}

// SubmitProfessionalInfo runs the ProfessionalInfo gate and persists the
// employment record on success. Requires a completed basic-info record.
func (m *Machine) SubmitProfessionalInfo(profile *models.EmploymentProfile) error {
	state, err := m.store.Load()
	if err != nil {
		return err
	}
	if incomplete := professionalInfoPrereq(state); incomplete != nil {
		return incomplete
	}
	if incomplete := ProfessionalInfoGate(profile); incomplete != nil {
		return incomplete
	}
	return m.store.SaveEmployment(profile)
}

// AttachKycDocument places a document into its category slot, replacing any
// previous upload for that category.
func (m *Machine) AttachKycDocument(category string, doc *models.Document) error {
	state, err := m.store.Load()
	if err != nil {
		return err
	}
	if incomplete := kycPrereq(state); incomplete != nil {
		return incomplete
	}
	docs := state.Documents
	if docs == nil {
		docs = &models.KycDocuments{}
	}
	if !docs.Set(category, doc) {
		return ErrUnknownCategory
	}
	return m.store.SaveDocuments(docs)
}

// SubmitKyc runs the KYC gate over the persisted document slots. On success
// the session is at ProfileAnalysis, which approves unconditionally.
func (m *Machine) SubmitKyc() error {
	state, err := m.store.Load()
	if err != nil {
		return err
	}
	if incomplete := kycPrereq(state); incomplete != nil {
		return incomplete
	}
	if incomplete := KycGate(state.Documents); incomplete != nil {
		return incomplete
	}
	return nil
}

// Disburse computes the EMI for the chosen terms and persists the loan
// record, completing origination. Requires every earlier stage to have
// completed; the loan starts with zero paid installments.
func (m *Machine) Disburse(amount float64, months int) (*models.LoanRecord, error) {
	state, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if incomplete := disbursalPrereq(state); incomplete != nil {
		return nil, incomplete
	}

	installment, err := emi.Calculate(amount, months)
	if err != nil {
		return nil, err
	}

	approved := m.now()
	loan := &models.LoanRecord{
		Amount:       amount,
		Months:       months,
		EMI:          installment,
		InterestRate: emi.MonthlyRate * 100,
		Rate:         emi.MonthlyRate,
		ApprovalDate: &approved,
	}
	if err := m.store.SaveLoan(loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// CurrentStage derives the borrower's position from persisted state alone,
// which is how a session resumes after the app restarts. A freshly disbursed
// loan reports DISBURSED for the dwell window, then SERVICED.
func (m *Machine) CurrentStage() (Stage, error) {
	state, err := m.store.Load()
	if err != nil {
		return StageMobileEntry, err
	}

	switch {
	case state.Loan != nil:
		if state.Loan.ApprovalDate != nil && m.now().Sub(*state.Loan.ApprovalDate) < m.dwell {
			return StageDisbursed, nil
		}
		return StageServiced, nil
	case state.Documents != nil && state.Documents.Complete():
		return StageProfileAnalysis, nil
	case state.Employment != nil:
		return StageKycUpload, nil
	case state.BasicInfo != nil:
		return StageProfessionalInfo, nil
	default:
		return StageBasicInfo, nil
	}
}

// CancelPendingVerification discards in-flight OTP input when the borrower
// closes the verification prompt. Persisted state and the challenge's
// consumed flag are untouched; only the countdown stops ticking.
func (m *Machine) CancelPendingVerification() {
	if m.countdown != nil {
		m.countdown.Stop()
	}
}
