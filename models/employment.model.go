package models

// Employment types selectable on the professional-info stage
const (
	EmploymentSalaried     = "salaried"
	EmploymentSelfEmployed = "self"
)

// EmploymentProfile is persisted under the "employmentProfile" key. Unlike
// the KYC slots, supporting documents form an unbounded ordered list; the
// two shapes differ because the gating differs.
type EmploymentProfile struct {
	EmploymentType string     `json:"employmentType"`
	CompanyName    string     `json:"companyName,omitempty"` // required only when salaried
	MonthlyIncome  float64    `json:"monthlyIncome"`
	Documents      []Document `json:"documents"`
}
