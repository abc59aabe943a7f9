// Package flight verifies flight numbers against an external provider or
// a format-only check.
package flight

import (
	"context"
	"regexp"
	"strings"

	"ladx/internal/domain/service"
)

// IATA designator: two or three letters/digits followed by a 1 to 4 digit
// flight number, e.g. "BA75", "W3 107".
var flightNumberPattern = regexp.MustCompile(`^[A-Z0-9]{2,3}\s?\d{1,4}$`)

// staticVerifier accepts any flight number that looks like an IATA
// designator. Used when no flight data provider is configured.
type staticVerifier struct{}

// NewStaticVerifier creates a format-only flight verifier.
func NewStaticVerifier() service.FlightVerifier {
	return &staticVerifier{}
}

// Verify checks the IATA format. It never returns schedule details; the
// caller keeps whatever times the traveler supplied.
func (v *staticVerifier) Verify(_ context.Context, flightNumber string) (*service.FlightInfo, error) {
	normalized := strings.ToUpper(strings.TrimSpace(flightNumber))
	if !flightNumberPattern.MatchString(normalized) {
		return nil, nil
	}

	return &service.FlightInfo{FlightNumber: normalized}, nil
}
