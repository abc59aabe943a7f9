package postgres

import (
	"context"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// kycRepository implements the repository.KYCRepository interface.
type kycRepository struct {
	db *gorm.DB
}

// NewKYCRepository is the constructor for kycRepository.
func NewKYCRepository(db *gorm.DB) repository.KYCRepository {
	return &kycRepository{
		db: db,
	}
}

// Create persists a new KYC submission. One submission per user.
func (repo *kycRepository) Create(ctx context.Context, kyc *entity.KYC) error {
	kycM := fromKYCDomain(kyc)

	if err := repo.db.WithContext(ctx).Create(kycM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("KYC already submitted for this user")
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create KYC submission")
	}

	kyc.ID = kycM.ID
	kyc.CreatedAt = kycM.CreatedAt
	kyc.UpdatedAt = kycM.UpdatedAt

	return nil
}

// FindByID retrieves a submission by its unique ID.
func (repo *kycRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.KYC, error) {
	var kycM model.KYCModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&kycM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrKYCNotFound
		}

		return nil, errors.Wrap(err, "failed to find KYC submission by ID")
	}

	return toKYCDomain(&kycM), nil
}

// FindByUserID retrieves a user's submission.
func (repo *kycRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.KYC, error) {
	var kycM model.KYCModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&kycM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrKYCNotFound
		}

		return nil, errors.Wrap(err, "failed to find KYC submission by user")
	}

	return toKYCDomain(&kycM), nil
}

// Update persists changes to an existing submission.
func (repo *kycRepository) Update(ctx context.Context, kyc *entity.KYC) error {
	kycM := fromKYCDomain(kyc)

	result := repo.db.WithContext(ctx).
		Model(&model.KYCModel{}).
		Where("id = ?", kyc.ID).
		Select("residential_address", "document_url", "document_key", "status").
		Updates(kycM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update KYC submission")
	}
	if result.RowsAffected == 0 {
		return repository.ErrKYCNotFound
	}

	return nil
}

// ListByStatus retrieves submissions with the given status, oldest first.
func (repo *kycRepository) ListByStatus(ctx context.Context, status entity.KYCStatus) ([]*entity.KYC, error) {
	var kycModels []*model.KYCModel

	if err := repo.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&kycModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list KYC submissions by status")
	}

	submissions := make([]*entity.KYC, 0, len(kycModels))
	for _, kycM := range kycModels {
		submissions = append(submissions, toKYCDomain(kycM))
	}

	return submissions, nil
}

// toKYCDomain converts a persistence model to a domain entity.
func toKYCDomain(data *model.KYCModel) *entity.KYC {
	return &entity.KYC{
		ID:                 data.ID,
		UserID:             data.UserID,
		ResidentialAddress: data.ResidentialAddress,
		DocumentURL:        data.DocumentURL,
		DocumentKey:        data.DocumentKey,
		Status:             entity.KYCStatus(data.Status),
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromKYCDomain converts a domain entity to a persistence model.
func fromKYCDomain(data *entity.KYC) *model.KYCModel {
	return &model.KYCModel{
		ID:                 data.ID,
		UserID:             data.UserID,
		ResidentialAddress: data.ResidentialAddress,
		DocumentURL:        data.DocumentURL,
		DocumentKey:        data.DocumentKey,
		Status:             string(data.Status),
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}
