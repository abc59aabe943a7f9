// Command ladx-seed provisions the admin account. Run it once against a
// fresh database, or again to reset the admin password.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"ladx/config"
	"ladx/internal/domain/repository"
	"ladx/internal/domain/service"
	"ladx/internal/infra/auth"
	logs "ladx/internal/infra/log"
	"ladx/internal/infra/persistence/postgres"
	"ladx/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	username := flag.String("username", envOr("ADMIN_USERNAME", "ladx"), "admin username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (defaults to ADMIN_PASSWORD)")
	flag.Parse()

	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewAdminRepository,
			auth.NewBcryptHasher,
		),
		fx.Invoke(func(params seedParams) {
			registerSeed(params, *username, *password)
		}),
	).Run()
}

type seedParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	AdminRepo  repository.AdminRepository
	Hasher     service.PasswordHasher
	Logger     *slog.Logger
}

func registerSeed(params seedParams, username, password string) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			created, err := impl.EnsureAdmin(ctx, params.AdminRepo, params.Hasher, username, password)
			if err != nil {
				return err
			}

			if created {
				params.Logger.Info("admin account created", slog.String("username", username))
			} else {
				params.Logger.Info("admin password reset", slog.String("username", username))
			}

			return params.Shutdowner.Shutdown()
		},
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
