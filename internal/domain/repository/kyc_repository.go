package repository

import (
	"context"
	"errors"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrKYCNotFound is returned when a KYC submission is not found.
var ErrKYCNotFound = errors.New("kyc submission not found")

// KYCRepository defines the interface for KYC submission persistence.
type KYCRepository interface {
	// Create persists a new KYC submission.
	Create(ctx context.Context, kyc *entity.KYC) error

	// FindByID retrieves a submission by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.KYC, error)

	// FindByUserID retrieves a user's submission.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.KYC, error)

	// Update persists changes to an existing submission.
	Update(ctx context.Context, kyc *entity.KYC) error

	// ListByStatus retrieves submissions with the given status, oldest first.
	ListByStatus(ctx context.Context, status entity.KYCStatus) ([]*entity.KYC, error)
}
