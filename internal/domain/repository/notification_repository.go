package repository

import (
	"context"
	"errors"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByID retrieves a notification by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// ListByUser retrieves a user's notifications, newest first. When
	// unreadOnly is set only unread notifications are returned.
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.Notification, error)

	// CountUnread counts a user's unread notifications.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead flags a single notification as read. The userID guards
	// against marking another user's notification.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error

	// MarkAllRead flags all of a user's notifications as read and returns
	// the number updated.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)

	// Delete removes a notification owned by the given user.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
