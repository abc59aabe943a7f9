package session

import (
	"log/slog"

	"ladx/config"
	"ladx/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Provider names for the session store backend.
const (
	ProviderRedis  = "redis"
	ProviderMemory = "memory"
)

// StoreParams defines the parameters for building the session store.
type StoreParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger

	// Redis is optional so the memory provider can run without a Redis
	// connection.
	Redis *redis.Client `optional:"true"`
}

// NewStore builds the configured session store backend.
func NewStore(params StoreParams) (service.SessionStore, error) {
	provider := ProviderRedis
	if params.Config.Session != nil && params.Config.Session.Provider != "" {
		provider = params.Config.Session.Provider
	}

	switch provider {
	case ProviderRedis:
		if params.Redis == nil {
			return nil, errors.New("session provider is redis but no redis client is configured")
		}

		return NewRedisStore(params.Redis), nil
	case ProviderMemory:
		params.Logger.Warn("using in-memory session store, sessions will not survive restarts")

		return NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unknown session provider: %s", provider)
	}
}
