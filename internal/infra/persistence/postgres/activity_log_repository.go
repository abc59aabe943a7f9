package postgres

import (
	"context"
	"encoding/json"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// activityLogRepository implements the repository.ActivityLogRepository interface.
type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository is the constructor for activityLogRepository.
func NewActivityLogRepository(db *gorm.DB) repository.ActivityLogRepository {
	return &activityLogRepository{
		db: db,
	}
}

// Create appends an activity log entry.
func (repo *activityLogRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	logM, err := fromActivityLogDomain(log)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create activity log")
	}

	log.ID = logM.ID
	log.CreatedAt = logM.CreatedAt

	return nil
}

// ListByUser retrieves a user's activity entries, newest first.
func (repo *activityLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ActivityLog, error) {
	query := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var logModels []*model.ActivityLogModel
	if err := query.Find(&logModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list activity logs by user")
	}

	return toActivityLogDomains(logModels)
}

// ListRecent retrieves the most recent activity entries across all users.
func (repo *activityLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	query := repo.db.WithContext(ctx).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var logModels []*model.ActivityLogModel
	if err := query.Find(&logModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent activity logs")
	}

	return toActivityLogDomains(logModels)
}

func toActivityLogDomains(logModels []*model.ActivityLogModel) ([]*entity.ActivityLog, error) {
	logs := make([]*entity.ActivityLog, 0, len(logModels))
	for _, logM := range logModels {
		log, err := toActivityLogDomain(logM)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, nil
}

// toActivityLogDomain converts a persistence model to a domain entity.
func toActivityLogDomain(data *model.ActivityLogModel) (*entity.ActivityLog, error) {
	var metadata map[string]any
	if len(data.Metadata) > 0 {
		if err := json.Unmarshal(data.Metadata, &metadata); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal activity log metadata")
		}
	}

	return &entity.ActivityLog{
		ID:        data.ID,
		UserID:    data.UserID,
		Action:    data.Action,
		Entity:    data.Entity,
		EntityID:  data.EntityID,
		Metadata:  metadata,
		CreatedAt: data.CreatedAt,
	}, nil
}

// fromActivityLogDomain converts a domain entity to a persistence model.
func fromActivityLogDomain(data *entity.ActivityLog) (*model.ActivityLogModel, error) {
	var metadata []byte
	if len(data.Metadata) > 0 {
		encoded, err := json.Marshal(data.Metadata)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal activity log metadata")
		}
		metadata = encoded
	}

	return &model.ActivityLogModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Action:    data.Action,
		Entity:    data.Entity,
		EntityID:  data.EntityID,
		Metadata:  metadata,
		CreatedAt: data.CreatedAt,
	}, nil
}
