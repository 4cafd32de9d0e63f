package entity

import (
	"time"

	"gorm.io/gorm"
)

// LegalDocument is the shared shape of versioned legal texts. At most one
// document per table is active at any time; activating a new version
// deactivates the others in the same transaction.
type LegalDocument struct {
	gorm.Model

	Version     string     `json:"version"`
	Content     string     `json:"content"`
	IsActive    bool       `json:"isActive"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type PrivacyPolicy struct {
	LegalDocument
}

func (PrivacyPolicy) TableName() string { return "privacy_policies" }

type TermsOfService struct {
	LegalDocument
}

func (TermsOfService) TableName() string { return "terms_of_services" }
