package repository

import (
	"context"
	"errors"

	"ladx/internal/domain/entity"
)

// ErrAdminNotFound is returned when an admin account is not found.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository defines the interface for admin account operations.
type AdminRepository interface {
	// Create persists a new admin account.
	Create(ctx context.Context, admin *entity.Admin) error

	// FindByUsername retrieves an admin by username.
	FindByUsername(ctx context.Context, username string) (*entity.Admin, error)

	// UpdatePassword replaces the stored password hash for an admin.
	UpdatePassword(ctx context.Context, username string, passwordHash string) error
}
