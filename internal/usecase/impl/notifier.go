// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "ladx/internal/delivery/context"
	"ladx/internal/domain/entity"
	"ladx/internal/domain/repository"
	"ladx/internal/domain/service"
	"ladx/internal/infra/mail"
	"ladx/internal/infra/metrics"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// notifier fans one event out to the notification feed, the realtime push
// channel and email. The feed entry is the source of truth; push and email
// are best effort and their failures are logged, never propagated.
type notifier struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	pusher           service.Pusher
	mailSender       service.MailSender
	metrics          *metrics.Metrics
	logger           *slog.Logger
}

// NotifierParams holds dependencies for the notifier, injected by Fx.
type NotifierParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	Pusher           service.Pusher
	MailSender       service.MailSender
	Metrics          *metrics.Metrics
	Logger           *slog.Logger
}

// NewNotifier is the constructor for notifier.
func NewNotifier(params NotifierParams) usecase.Notifier {
	return &notifier{
		notificationRepo: params.NotificationRepo,
		userRepo:         params.UserRepo,
		pusher:           params.Pusher,
		mailSender:       params.MailSender,
		metrics:          params.Metrics,
		logger:           params.Logger,
	}
}

func (srv *notifier) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Notify delivers the event to the given user on all channels.
func (srv *notifier) Notify(ctx context.Context, userID uuid.UUID, eventType entity.NotificationType, message string, data map[string]any) {
	logger := srv.log(ctx).With(
		slog.String("user_id", userID.String()),
		slog.String("event_type", string(eventType)),
	)

	notification := &entity.Notification{
		UserID:  userID,
		Type:    eventType,
		Message: message,
		Data:    data,
	}
	if err := srv.notificationRepo.Create(ctx, notification); err != nil {
		logger.Error("failed to persist notification", slog.String("error", err.Error()))
	} else {
		srv.metrics.NotificationsCreated.WithLabelValues(string(eventType)).Inc()
	}

	if srv.pusher.IsOnline(userID) {
		srv.pusher.Push(userID, entity.Event{
			Type:    eventType,
			Message: message,
			Data:    data,
		})
		srv.metrics.PushesDelivered.Inc()
	} else {
		srv.metrics.PushesSkipped.Inc()
	}

	srv.sendEventMail(ctx, logger, userID, eventType, message)
}

func (srv *notifier) sendEventMail(ctx context.Context, logger *slog.Logger, userID uuid.UUID, eventType entity.NotificationType, message string) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("skipping notification email, user lookup failed", slog.String("error", err.Error()))

		return
	}

	subject := mailSubject(eventType)
	eventMail, err := mail.EventMail(user.Email, user.FullName, subject, message)
	if err != nil {
		logger.Error("failed to render notification email", slog.String("error", err.Error()))

		return
	}

	if err := srv.mailSender.Send(ctx, eventMail); err != nil {
		srv.metrics.EmailsFailed.Inc()
		logger.Warn("failed to send notification email", slog.String("error", err.Error()))

		return
	}
	srv.metrics.EmailsSent.Inc()
}

func mailSubject(eventType entity.NotificationType) string {
	switch eventType {
	case entity.NotificationOrderCreated:
		return "Your order has been created"
	case entity.NotificationOrderUpdated:
		return "Your order has been updated"
	case entity.NotificationOrderDeleted:
		return "Your order has been cancelled"
	case entity.NotificationOrderMatched:
		return "Your order has been matched to a traveler"
	case entity.NotificationTravelPlanCreated:
		return "Your travel plan has been created"
	case entity.NotificationTravelPlanUpdated:
		return "Your travel plan has been updated"
	case entity.NotificationTravelPlanDeleted:
		return "Your travel plan has been removed"
	case entity.NotificationTravelPlanMatched:
		return "An order has been matched to your travel plan"
	default:
		return "LADX notification"
	}
}
