package models

import "time"

// Loan statuses shown on the loans list
const (
	LoanStatusActive = "active"
	LoanStatusPaid   = "paid"
)

// LoanRecord is the loan persisted under the "loanDetails" key. Amount,
// months, emi and interestRate are the durable contract; paidEMIs, rate and
// approvalDate are optional servicing fields.
type LoanRecord struct {
	Amount       float64    `json:"amount"`
	Months       int        `json:"months"`
	EMI          int64      `json:"emi"`
	InterestRate float64    `json:"interestRate"`         // percent per month, e.g. 1.5
	PaidEMIs     int        `json:"paidEMIs,omitempty"`   // installments already paid
	Rate         float64    `json:"rate,omitempty"`       // monthly rate as a fraction, e.g. 0.015
	ApprovalDate *time.Time `json:"approvalDate,omitempty"`
}
