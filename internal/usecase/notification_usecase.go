package usecase

import (
	"context"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase defines the interface for a user's notification feed.
type NotificationUsecase interface {
	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.Notification, error)

	// UnreadCount returns the number of unread notifications.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead flags one notification as read.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// MarkAllRead flags every notification as read and returns the number
	// updated.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)

	// DeleteNotification removes one notification from the feed.
	DeleteNotification(ctx context.Context, userID, notificationID uuid.UUID) error
}

// Notifier fans one event out to every configured channel: the
// notification feed, the realtime push and email. Channel failures are
// independent; a failed email never blocks the feed entry.
type Notifier interface {
	// Notify delivers the event to the given user on all channels.
	Notify(ctx context.Context, userID uuid.UUID, eventType entity.NotificationType, message string, data map[string]any)
}
