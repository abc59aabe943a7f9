package entity

import (
	"time"

	"github.com/google/uuid"
)

// KYCStatus represents the review state of a KYC submission.
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusApproved KYCStatus = "approved"
	KYCStatusRejected KYCStatus = "rejected"
)

// KYC is an identity-verification submission linked to a user.
type KYC struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	ResidentialAddress string    `json:"residential_address"`
	DocumentURL        string    `json:"document_url"` // Public URL of the uploaded identity document.
	DocumentKey        string    `json:"-"`            // Media-store key of the document.
	Status             KYCStatus `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
