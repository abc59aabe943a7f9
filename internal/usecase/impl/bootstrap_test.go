package impl

import (
	"context"
	"testing"

	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/infra/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdminCreatesAccount(t *testing.T) {
	repo := newFakeAdminRepo()
	hasher := auth.NewBcryptHasher(newTestConfig())

	created, err := EnsureAdmin(context.Background(), repo, hasher, "ladx", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := repo.FindByUsername(context.Background(), "ladx")
	require.NoError(t, err)
	assert.True(t, hasher.Check("s3cret", admin.Password))
}

func TestEnsureAdminResetsExistingPassword(t *testing.T) {
	repo := newFakeAdminRepo()
	hasher := auth.NewBcryptHasher(newTestConfig())

	_, err := EnsureAdmin(context.Background(), repo, hasher, "ladx", "old-password")
	require.NoError(t, err)

	created, err := EnsureAdmin(context.Background(), repo, hasher, "ladx", "new-password")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := repo.FindByUsername(context.Background(), "ladx")
	require.NoError(t, err)
	assert.True(t, hasher.Check("new-password", admin.Password))
	assert.False(t, hasher.Check("old-password", admin.Password))
}

func TestEnsureAdminRequiresCredentials(t *testing.T) {
	repo := newFakeAdminRepo()
	hasher := auth.NewBcryptHasher(newTestConfig())

	_, err := EnsureAdmin(context.Background(), repo, hasher, "ladx", "")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
