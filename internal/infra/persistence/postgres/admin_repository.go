package postgres

import (
	"context"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// adminRepository implements the repository.AdminRepository interface.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{
		db: db,
	}
}

// Create persists a new admin account.
func (repo *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	adminM := fromAdminDomain(admin)

	if err := repo.db.WithContext(ctx).Create(adminM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("admin username already taken")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create admin")
	}

	admin.ID = adminM.ID
	admin.CreatedAt = adminM.CreatedAt
	admin.UpdatedAt = adminM.UpdatedAt

	return nil
}

// FindByUsername retrieves an admin by username.
func (repo *adminRepository) FindByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	var adminM model.AdminModel

	if err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&adminM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAdminNotFound
		}

		return nil, errors.Wrap(err, "failed to find admin by username")
	}

	return toAdminDomain(&adminM), nil
}

// UpdatePassword replaces the stored password hash for an admin.
func (repo *adminRepository) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AdminModel{}).
		Where("username = ?", username).
		Update("password", passwordHash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update admin password")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAdminNotFound
	}

	return nil
}

// toAdminDomain converts a persistence model to a domain entity.
func toAdminDomain(data *model.AdminModel) *entity.Admin {
	return &entity.Admin{
		ID:        data.ID,
		Username:  data.Username,
		Password:  data.Password,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromAdminDomain converts a domain entity to a persistence model.
func fromAdminDomain(data *entity.Admin) *model.AdminModel {
	return &model.AdminModel{
		ID:        data.ID,
		Username:  data.Username,
		Password:  data.Password,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
