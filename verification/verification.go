package verification

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lend/models"
)

var (
	panRegex     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarRegex = regexp.MustCompile(`^[0-9]{12}$`)
	ifscRegex    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	digitsRegex  = regexp.MustCompile(`^[0-9]*$`)
	mobileRegex  = regexp.MustCompile(`^\d{10}$`)
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePAN uppercases the input and checks it against the PAN format.
// This is a format check only; no registry lookup is made.
func ValidatePAN(raw string) (string, bool) {
	formatted := strings.ToUpper(raw)
	return formatted, panRegex.MatchString(formatted)
}

// ValidateAadhaarFormat reports whether the input is exactly 12 digits.
func ValidateAadhaarFormat(raw string) bool {
	return aadhaarRegex.MatchString(raw)
}

// ValidateIFSC uppercases the input and returns it with an error message,
// empty when the code is well formed.
func ValidateIFSC(raw string) (string, string) {
	formatted := strings.ToUpper(raw)
	if !ifscRegex.MatchString(formatted) {
		return formatted, "Invalid IFSC (SBIN0000001)"
	}
	return formatted, ""
}

// ValidateAccountNumber returns an error message for a bank account number,
// empty when valid. Digits only, minimum 11 of them.
func ValidateAccountNumber(raw string) string {
	if !digitsRegex.MatchString(raw) {
		return "Digits only"
	}
	if len(raw) < 11 {
		return "Minimum 11 digits"
	}
	return ""
}

// ValidateMobile reports whether the input is a 10-digit mobile number.
func ValidateMobile(mobile string) bool {
	return mobileRegex.MatchString(mobile)
}

// ValidateEmail reports whether the input looks like an email address.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Source supplies random integers for OTP generation. Production code passes
// DefaultSource; tests pass a seeded rand so codes are reproducible.
type Source interface {
	Intn(n int) int
}

// DefaultSource returns a time-seeded random source.
func DefaultSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewChallenge issues a fresh OTP challenge. The code is drawn uniformly from
// [100000, 999999], so it is always six digits with a non-zero leading digit.
func NewChallenge(purpose string, src Source) *models.OTPChallenge {
	return &models.OTPChallenge{
		Purpose:   purpose,
		Code:      strconv.Itoa(100000 + src.Intn(900000)),
		CreatedAt: time.Now(),
	}
}

// VerifyChallenge compares the submitted code against the challenge by exact
// string equality. On success the challenge is marked consumed; on failure
// nothing changes and the caller re-prompts.
func VerifyChallenge(challenge *models.OTPChallenge, submitted string) bool {
	if challenge == nil || challenge.Consumed {
		return false
	}
	if submitted != challenge.Code {
		return false
	}
	challenge.Consumed = true
	return true
}
