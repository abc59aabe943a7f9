package flight

import (
	"ladx/config"
	"ladx/internal/domain/service"

	"github.com/pkg/errors"
)

// Provider names for flight verification.
const (
	ProviderStatic        = "static"
	ProviderAviationstack = "aviationstack"
)

// NewVerifier builds the configured flight verifier.
func NewVerifier(cfg *config.Config) (service.FlightVerifier, error) {
	provider := ProviderStatic
	if cfg.Flight != nil && cfg.Flight.Provider != "" {
		provider = cfg.Flight.Provider
	}

	switch provider {
	case ProviderStatic:
		return NewStaticVerifier(), nil
	case ProviderAviationstack:
		return NewAviationstackVerifier(cfg)
	default:
		return nil, errors.Errorf("unknown flight provider: %s", provider)
	}
}
