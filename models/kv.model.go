package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// KVRecord is one persisted entry of the key-value collaborator. Every
// onboarding sub-record (basic info, loan, OTP, documents) is stored as a
// JSON value under its logical key, namespaced per borrower mobile.
type KVRecord struct {
	gorm.Model
	Key   string         `gorm:"uniqueIndex;size:255;not null" json:"key"`
	Value datatypes.JSON `gorm:"not null" json:"value"`
}
