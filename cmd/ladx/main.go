package main

import (
	"context"
	"log/slog"
	"os"

	"ladx/config"
	"ladx/internal/delivery"
	"ladx/internal/delivery/http"
	"ladx/internal/delivery/http/middleware"
	"ladx/internal/delivery/http/router/handler"
	"ladx/internal/delivery/ws"
	"ladx/internal/domain/service"
	"ladx/internal/infra/auth"
	"ladx/internal/infra/flight"
	logs "ladx/internal/infra/log"
	"ladx/internal/infra/mail"
	"ladx/internal/infra/media"
	"ladx/internal/infra/metrics"
	"ladx/internal/infra/persistence/postgres"
	"ladx/internal/infra/qrcode"
	"ladx/internal/infra/realtime"
	"ladx/internal/infra/session"
	"ladx/internal/usecase/impl"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		metrics.NewMetrics,
		newRedisClient,
	)
}

// newRedisClient only dials Redis when the session store needs it. The
// memory provider runs without a Redis connection.
func newRedisClient(params session.RedisParams) (*redis.Client, error) {
	if params.Config.Session != nil && params.Config.Session.Provider == session.ProviderMemory {
		return nil, nil
	}

	return session.NewRedisClient(params)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAdminRepository,
			postgres.NewOrderRepository,
			postgres.NewTravelPlanRepository,
			postgres.NewNotificationRepository,
			postgres.NewActivityLogRepository,
			postgres.NewKYCRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			session.NewStore,
			mail.NewGomailSender,
			flight.NewVerifier,
			media.NewBlobStore,
			qrcode.NewQRCodeService,
			newHub,
			newPusher,
		),
	)
}

// newHub builds the connection hub and closes every live websocket on
// shutdown.
func newHub(lc fx.Lifecycle, logger *slog.Logger) *realtime.Hub {
	hub := realtime.NewHub(logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			hub.CloseAll()

			return nil
		},
	})

	return hub
}

// newPusher exposes the hub through the domain interface the notifier
// depends on.
func newPusher(hub *realtime.Hub) service.Pusher {
	return hub
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewOrderService,
			impl.NewTravelPlanService,
			impl.NewAdminService,
			impl.NewDashboardService,
			impl.NewNotificationService,
			impl.NewNotifier,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewOrderHandler,
			handler.NewTravelPlanHandler,
			handler.NewAdminHandler,
			handler.NewDashboardHandler,
			handler.NewNotificationHandler,
			ws.NewHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
