package impl

import (
	"context"
	"testing"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNotificationService(t *testing.T) (usecase.NotificationUsecase, *fakeNotificationRepo) {
	t.Helper()

	repo := newFakeNotificationRepo()
	svc := NewNotificationService(NotificationServiceParams{NotificationRepo: repo})

	return svc, repo
}

func seedNotification(t *testing.T, repo *fakeNotificationRepo, userID uuid.UUID) *entity.Notification {
	t.Helper()

	notification := &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationOrderCreated,
		Message: "Your order has been created.",
	}
	require.NoError(t, repo.Create(context.Background(), notification))

	return notification
}

func TestListNotificationsUnreadFilter(t *testing.T) {
	svc, repo := createTestNotificationService(t)
	userID := uuid.New()

	first := seedNotification(t, repo, userID)
	seedNotification(t, repo, userID)
	require.NoError(t, svc.MarkRead(context.Background(), userID, first.ID))

	all, err := svc.ListNotifications(context.Background(), userID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unread, err := svc.ListNotifications(context.Background(), userID, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.NotEqual(t, first.ID, unread[0].ID)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	svc, repo := createTestNotificationService(t)
	userID := uuid.New()

	seedNotification(t, repo, userID)
	seedNotification(t, repo, userID)
	seedNotification(t, repo, uuid.New())

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := svc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err = svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	svc, repo := createTestNotificationService(t)
	owner := uuid.New()
	notification := seedNotification(t, repo, owner)

	err := svc.MarkRead(context.Background(), uuid.New(), notification.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)

	assert.NoError(t, svc.MarkRead(context.Background(), owner, notification.ID))
}

func TestDeleteNotificationScopedToOwner(t *testing.T) {
	svc, repo := createTestNotificationService(t)
	owner := uuid.New()
	notification := seedNotification(t, repo, owner)

	err := svc.DeleteNotification(context.Background(), uuid.New(), notification.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)

	require.NoError(t, svc.DeleteNotification(context.Background(), owner, notification.ID))
	remaining, err := svc.ListNotifications(context.Background(), owner, false)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
