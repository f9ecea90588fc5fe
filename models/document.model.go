package models

// Document is an uploaded file reference produced by the upload handler. The
// engine only cares about presence and category; the bytes live on disk.
type Document struct {
	ID       string `json:"id"` // opaque handle (uuid)
	URI      string `json:"uri"`
	Name     string `json:"name"`
	MimeType string `json:"type"`
}

// KYC document categories. Each category holds at most one document.
const (
	KycCategorySelfie       = "selfie"
	KycCategoryPan          = "pan"
	KycCategoryAadhaarFront = "aadhaarFront"
	KycCategoryAadhaarBack  = "aadhaarBack"
)

// KycDocuments is the four-slot record persisted under the "kycDocuments"
// key. All four slots must be filled before the KYC stage completes.
type KycDocuments struct {
	Selfie       *Document `json:"selfie,omitempty"`
	Pan          *Document `json:"pan,omitempty"`
	AadhaarFront *Document `json:"aadhaarFront,omitempty"`
	AadhaarBack  *Document `json:"aadhaarBack,omitempty"`
}

// Set assigns a document to its category slot, replacing any previous one.
// Returns false for an unknown category.
func (k *KycDocuments) Set(category string, doc *Document) bool {
	switch category {
	case KycCategorySelfie:
		k.Selfie = doc
	case KycCategoryPan:
		k.Pan = doc
	case KycCategoryAadhaarFront:
		k.AadhaarFront = doc
	case KycCategoryAadhaarBack:
		k.AadhaarBack = doc
	default:
		return false
	}
	return true
}

// Missing lists the empty category slots.
func (k *KycDocuments) Missing() []string {
	var missing []string
	if k.Selfie == nil {
		missing = append(missing, KycCategorySelfie)
	}
	if k.Pan == nil {
		missing = append(missing, KycCategoryPan)
	}
	if k.AadhaarFront == nil {
		missing = append(missing, KycCategoryAadhaarFront)
	}
	if k.AadhaarBack == nil {
		missing = append(missing, KycCategoryAadhaarBack)
	}
	return missing
}

// Complete reports whether every slot is filled.
func (k *KycDocuments) Complete() bool {
	return len(k.Missing()) == 0
}
