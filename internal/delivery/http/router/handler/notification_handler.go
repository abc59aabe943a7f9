package handler

import (
	"log/slog"
	"net/http"

	"ladx/internal/delivery/http/response"
	"ladx/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
}

// NotificationHandler holds dependencies for notification feed handlers.
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
	logger         *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler.
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: params.NotificationUC,
		logger:         params.Logger,
	}
}

// ListNotifications returns the caller's notifications, newest first.
// Pass unread=true to restrict to unread entries.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	unreadOnly := c.QueryParam("unread") == "true"

	notifications, err := h.notificationUC.ListNotifications(c.Request().Context(), principal.ID, unreadOnly)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "Notifications retrieved successfully")
}

// UnreadCount returns the caller's unread notification count.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	count, err := h.notificationUC.UnreadCount(c.Request().Context(), principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"unread_count": count}, "Unread count retrieved successfully")
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	notificationID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.notificationUC.MarkRead(c.Request().Context(), principal.ID, notificationID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// MarkAllRead flags every notification as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	updated, err := h.notificationUC.MarkAllRead(c.Request().Context(), principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"updated": updated}, "Notifications marked as read")
}

// DeleteNotification removes one notification from the feed.
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	notificationID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.notificationUC.DeleteNotification(c.Request().Context(), principal.ID, notificationID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification deleted successfully")
}
