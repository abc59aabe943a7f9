// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email unique constraint is violated.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create persists a new user and fills in generated fields.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByResetTokenHash retrieves a user holding the given unexpired
	// password-reset token hash.
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error

	// ListByRole retrieves all users with the given role, newest first.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// CountByRole counts users with the given role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
