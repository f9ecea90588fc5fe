package models

import "time"

// OTP challenge purposes
const (
	OTPPurposeLogin   = "LoginVerification"
	OTPPurposeAadhaar = "AadhaarVerification"
)

// OTPChallenge is a pending one-time-password challenge. Login challenges are
// persisted under the "userOtp" key between issuance and verification;
// Aadhaar challenges under "aadhaarOtp". A challenge is replaced (not
// appended) on resend and stays valid until then. There is no expiry or
// attempt limit beyond the cosmetic resend countdown.
type OTPChallenge struct {
	Purpose   string    `json:"purpose"`
	Code      string    `json:"code"` // exactly 6 digits, leading digit never zero
	Mobile    string    `json:"mobile,omitempty"`
	Aadhaar   string    `json:"aadhaar,omitempty"` // the number this challenge verifies
	CreatedAt time.Time `json:"createdAt"`
	Consumed  bool      `json:"consumed"`
}
