package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// TravelPlanStatus represents the progress of a traveler's trip.
type TravelPlanStatus string

const (
	TravelPlanStatusScheduled  TravelPlanStatus = "Scheduled"
	TravelPlanStatusInProgress TravelPlanStatus = "In Progress"
	TravelPlanStatusCompleted  TravelPlanStatus = "Completed"
)

// IsValid checks if the TravelPlanStatus is a valid value.
func (s TravelPlanStatus) IsValid() bool {
	switch s {
	case TravelPlanStatusScheduled, TravelPlanStatusInProgress, TravelPlanStatusCompleted:
		return true
	default:
		return false
	}
}

// TravelPlan is a traveler's declared trip with spare luggage capacity.
// Admin matching flips IsMatched and appends order ids to MatchedOrders.
type TravelPlan struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user_id"` // The owning traveler.
	Origin          string           `json:"origin"`
	Destination     string           `json:"destination"`
	TravelDate      time.Time        `json:"travel_date"`
	Capacity        int              `json:"capacity"` // Number of packages the traveler can carry, at least 1.
	AvailableWeight float64          `json:"available_weight"`
	FlightNumber    string           `json:"flight_number"`
	DepartureTime   time.Time        `json:"departure_time"`
	ArrivalTime     time.Time        `json:"arrival_time"`
	AirlineName     string           `json:"airline_name"`
	Status          TravelPlanStatus `json:"status"`
	IsMatched       bool             `json:"is_matched"`
	MatchedOrders   []uuid.UUID      `json:"matched_orders"` // Ordered list of matched order ids.
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// HasMatchedOrder reports whether the given order is already linked to the plan.
func (p *TravelPlan) HasMatchedOrder(orderID uuid.UUID) bool {
	return slices.Contains(p.MatchedOrders, orderID)
}
