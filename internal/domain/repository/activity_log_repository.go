package repository

import (
	"context"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// ActivityLogRepository defines the interface for the append-only audit trail.
type ActivityLogRepository interface {
	// Create appends an activity log entry.
	Create(ctx context.Context, log *entity.ActivityLog) error

	// ListByUser retrieves a user's activity entries, newest first,
	// capped at limit.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ActivityLog, error)

	// ListRecent retrieves the most recent activity entries across all
	// users, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}
