package usecase

import (
	"context"
	"io"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries the editable profile fields. Nil pointers
// leave the current value untouched.
type UpdateProfileInput struct {
	FullName    *string
	Country     *string
	State       *string
	PhoneNumber *string
	Gender      *entity.Gender
}

// SubmitKYCInput carries a KYC submission with the identity document upload.
type SubmitKYCInput struct {
	ResidentialAddress string
	DocumentFilename   string
	DocumentMIME       string
	Document           io.Reader
}

// UserUsecase defines the interface for profile-related business operations.
type UserUsecase interface {
	// GetProfile returns the user's profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies the given changes to the user's profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error)

	// SwitchRole toggles the user between sender and traveler.
	SwitchRole(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error)

	// SubmitKYC stores the identity document and creates a pending KYC
	// submission linked to the user.
	SubmitKYC(ctx context.Context, userID uuid.UUID, input SubmitKYCInput) (*entity.KYC, error)

	// GetKYC returns the user's KYC submission.
	GetKYC(ctx context.Context, userID uuid.UUID) (*entity.KYC, error)
}
