package impl

import (
	"context"
	"log/slog"

	"ladx/internal/domain/entity"
	"ladx/internal/domain/repository"

	"github.com/google/uuid"
)

// recordActivity appends an audit entry. The audit trail never blocks the
// flow it records, so failures are logged and swallowed.
func recordActivity(ctx context.Context, logger *slog.Logger, repo repository.ActivityLogRepository,
	userID uuid.UUID, action, entityName string, entityID *uuid.UUID, metadata map[string]any,
) {
	entry := &entity.ActivityLog{
		UserID:   userID,
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Metadata: metadata,
	}

	if err := repo.Create(ctx, entry); err != nil {
		logger.Warn("failed to record activity",
			slog.String("action", action),
			slog.String("entity", entityName),
			slog.String("error", err.Error()))
	}
}
