package models

// BasicInfoData is the identity + bank record persisted under the
// "@BasicInfoData" key once the BasicInfo stage completes. The field set and
// JSON names are the durable contract; `aadhar` keeps its historical spelling.
type BasicInfoData struct {
	FullName string `json:"fullName"`
	Mobile   string `json:"mobile"`
	PAN      string `json:"pan"`
	Aadhaar  string `json:"aadhar"`
	DOB      string `json:"dob"` // ISO-8601, as captured by the intake form
	Email    string `json:"email"`

	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	IFSC          string `json:"ifsc"`
	Branch        string `json:"branch"`
}

// FirstName returns the display name used on the dashboard greeting.
func (b *BasicInfoData) FirstName() string {
	if b == nil || b.FullName == "" {
		return "User"
	}
	for i := 0; i < len(b.FullName); i++ {
		if b.FullName[i] == ' ' {
			return b.FullName[:i]
		}
	}
	return b.FullName
}
