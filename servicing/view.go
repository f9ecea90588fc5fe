// Package servicing builds the read-only projections behind the dashboard
// and loans screens. Nothing here is cached: every view is recomputed from
// the latest persisted state, so it can never drift from the loan record.
package servicing

import (
	"lend/emi"
	"lend/models"
)

// LoanView is one loan as rendered on the loans list.
type LoanView struct {
	ID          int       `json:"id"`
	Amount      float64   `json:"amount"`
	Months      int       `json:"months"`
	EMI         int64     `json:"emi"`
	Status      string    `json:"status"`
	CreatedDate string    `json:"createdDate"`
	Stats       emi.Stats `json:"stats"`
}

// Summary is the dashboard projection for one borrower.
type Summary struct {
	Greeting   string             `json:"greeting"`
	ActiveLoan *models.LoanRecord `json:"activeLoan,omitempty"`
	Stats      *emi.Stats         `json:"stats,omitempty"`
}

// BuildSummary derives the dashboard view from the application state.
func BuildSummary(state *models.ApplicationState) Summary {
	summary := Summary{Greeting: state.BasicInfo.FirstName()}

	if state.Loan != nil {
		stats := emi.Derive(*state.Loan)
		summary.ActiveLoan = state.Loan
		summary.Stats = &stats
	}
	return summary
}

// BuildLoanList derives the loans-list view: the borrower's persisted loan
// first, followed by the two sample records the list screen has always
// shown. status filters by "active"/"paid"; "all" (or empty) returns
// everything.
func BuildLoanList(state *models.ApplicationState, status string) []LoanView {
	var views []LoanView

	if state.Loan != nil {
		created := ""
		if state.Loan.ApprovalDate != nil {
			created = state.Loan.ApprovalDate.Format("02 Jan 2006")
		}
		views = append(views, LoanView{
			ID:          1,
			Amount:      state.Loan.Amount,
			Months:      state.Loan.Months,
			EMI:         state.Loan.EMI,
			Status:      models.LoanStatusActive,
			CreatedDate: created,
			Stats:       emi.Derive(*state.Loan),
		})
		views = append(views, demoLoans()...)
	}

	if status == "" || status == "all" {
		return views
	}
	filtered := views[:0]
	for _, view := range views {
		if view.Status == status {
			filtered = append(filtered, view)
		}
	}
	return filtered
}

// demoLoans are the static showcase records on the loans screen.
func demoLoans() []LoanView {
	paid := models.LoanRecord{Amount: 150000, Months: 36, EMI: 4500, PaidEMIs: 36}
	active := models.LoanRecord{Amount: 75000, Months: 30, EMI: 2500}

	return []LoanView{
		{
			ID:          2,
			Amount:      paid.Amount,
			Months:      paid.Months,
			EMI:         paid.EMI,
			Status:      models.LoanStatusPaid,
			CreatedDate: "10 May 2023",
			Stats:       emi.Derive(paid),
		},
		{
			ID:          3,
			Amount:      active.Amount,
			Months:      active.Months,
			EMI:         active.EMI,
			Status:      models.LoanStatusActive,
			CreatedDate: "01 Jun 2025",
			Stats:       emi.Derive(active),
		},
	}
}
