package impl

import (
	"context"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/domain/service"

	"github.com/pkg/errors"
)

// EnsureAdmin provisions the admin account a fresh deployment needs
// before anyone can reach the matching surface. An existing account has
// its password reset instead, so rerunning the seed recovers a lost
// credential. Reports whether the account was created.
func EnsureAdmin(ctx context.Context, adminRepo repository.AdminRepository, hasher service.PasswordHasher, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, domainerrors.ErrValidationFailed.WrapMessage("admin username and password must be set")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, errors.Wrap(err, "failed to hash admin password")
	}

	_, err = adminRepo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return false, adminRepo.UpdatePassword(ctx, username, hash)
	case errors.Is(err, repository.ErrAdminNotFound):
		return true, adminRepo.Create(ctx, &entity.Admin{Username: username, Password: hash})
	default:
		return false, err
	}
}
