// Package emi implements the equated-monthly-installment math used at
// origination and for servicing statistics on the dashboard.
package emi

import (
	"errors"
	"math"

	"lend/models"
)

// MonthlyRate is the fixed origination rate: 1.5% per month.
const MonthlyRate = 0.015

// ErrInvalidTenor is returned when the tenor is zero or negative; the
// amortization formula divides by (1+r)^n - 1, which is zero at n = 0.
var ErrInvalidTenor = errors.New("emi: tenor must be at least one month")

// Calculate returns the monthly installment for a principal over `months` at
// MonthlyRate, rounded to the nearest rupee.
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
func Calculate(principal float64, months int) (int64, error) {
	return CalculateAtRate(principal, MonthlyRate, months)
}

// CalculateAtRate is Calculate with an explicit monthly rate.
func CalculateAtRate(principal, rate float64, months int) (int64, error) {
	if months <= 0 {
		return 0, ErrInvalidTenor
	}
	factor := math.Pow(1+rate, float64(months))
	emi := principal * rate * factor / (factor - 1)
	return int64(math.Round(emi)), nil
}

// Stats are the repayment-progress figures derived from a loan record.
type Stats struct {
	PaidAmount      float64 `json:"paidAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
	ProgressPercent float64 `json:"progressPercent"` // one decimal place
}

// Derive computes servicing statistics from a loan record. A zero tenor
// yields zero progress rather than a division by zero.
func Derive(loan models.LoanRecord) Stats {
	paid := float64(loan.EMI) * float64(loan.PaidEMIs)
	remaining := loan.Amount - paid
	if remaining < 0 {
		remaining = 0
	}

	progress := 0.0
	if loan.Months > 0 {
		progress = math.Round(float64(loan.PaidEMIs)/float64(loan.Months)*1000) / 10
	}

	return Stats{
		PaidAmount:      paid,
		RemainingAmount: remaining,
		ProgressPercent: progress,
	}
}
