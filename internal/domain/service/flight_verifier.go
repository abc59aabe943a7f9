package service

import (
	"context"
	"time"
)

// FlightInfo describes a verified flight.
type FlightInfo struct {
	FlightNumber  string
	AirlineName   string
	DepartureTime time.Time
	ArrivalTime   time.Time
}

// FlightVerifier checks that a flight number refers to a real flight and
// returns its schedule details.
type FlightVerifier interface {
	// Verify looks up a flight number. Returns a nil FlightInfo with a
	// nil error when the number is well formed but unknown to the
	// provider; the caller decides whether that blocks the operation.
	Verify(ctx context.Context, flightNumber string) (*FlightInfo, error)
}
