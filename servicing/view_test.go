package servicing

import (
	"testing"
	"time"

	"lend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateWithLoan() *models.ApplicationState {
	approved := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	return &models.ApplicationState{
		BasicInfo: &models.BasicInfoData{FullName: "Asha Verma", Mobile: "9876543210"},
		Loan: &models.LoanRecord{
			Amount:       50000,
			Months:       12,
			EMI:          4584,
			InterestRate: 1.5,
			Rate:         0.015,
			PaidEMIs:     6,
			ApprovalDate: &approved,
		},
	}
}

func TestBuildSummaryWithLoan(t *testing.T) {
	summary := BuildSummary(stateWithLoan())

	assert.Equal(t, "Asha", summary.Greeting)
	require.NotNil(t, summary.ActiveLoan)
	assert.Equal(t, int64(4584), summary.ActiveLoan.EMI)
	require.NotNil(t, summary.Stats)
	assert.Equal(t, 50.0, summary.Stats.ProgressPercent)
}

func TestBuildSummaryWithoutLoan(t *testing.T) {
	summary := BuildSummary(&models.ApplicationState{
		BasicInfo: &models.BasicInfoData{FullName: "Asha Verma"},
	})

	assert.Equal(t, "Asha", summary.Greeting)
	assert.Nil(t, summary.ActiveLoan)
	assert.Nil(t, summary.Stats)
}

func TestBuildSummaryEmptyState(t *testing.T) {
	summary := BuildSummary(&models.ApplicationState{})

	// no identity yet still renders a usable greeting
	assert.Equal(t, "User", summary.Greeting)
	assert.Nil(t, summary.ActiveLoan)
}

func TestBuildLoanListIncludesShowcaseRecords(t *testing.T) {
	views := BuildLoanList(stateWithLoan(), "all")

	require.Len(t, views, 3)
	assert.Equal(t, 1, views[0].ID)
	assert.Equal(t, models.LoanStatusActive, views[0].Status)
	assert.Equal(t, "15 Nov 2025", views[0].CreatedDate)

	assert.Equal(t, 2, views[1].ID)
	assert.Equal(t, models.LoanStatusPaid, views[1].Status)
	assert.Equal(t, "10 May 2023", views[1].CreatedDate)
	assert.Equal(t, 100.0, views[1].Stats.ProgressPercent)

	assert.Equal(t, 3, views[2].ID)
	assert.Equal(t, models.LoanStatusActive, views[2].Status)
}

func TestBuildLoanListStatusFilter(t *testing.T) {
	state := stateWithLoan()

	active := BuildLoanList(state, models.LoanStatusActive)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].ID)
	assert.Equal(t, 3, active[1].ID)

	paid := BuildLoanList(state, models.LoanStatusPaid)
	require.Len(t, paid, 1)
	assert.Equal(t, 2, paid[0].ID)

	assert.Len(t, BuildLoanList(state, ""), 3)
}

func TestBuildLoanListEmptyWithoutLoan(t *testing.T) {
	views := BuildLoanList(&models.ApplicationState{}, "all")
	assert.Empty(t, views)
}
