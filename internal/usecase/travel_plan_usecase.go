package usecase

import (
	"context"
	"time"

	"ladx/internal/domain/entity"
	"ladx/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateTravelPlanInput defines the data required to declare a trip.
type CreateTravelPlanInput struct {
	Origin          string
	Destination     string
	TravelDate      time.Time
	Capacity        int
	AvailableWeight float64
	FlightNumber    string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	AirlineName     string
}

// UpdateTravelPlanInput carries the editable trip fields. Nil pointers
// leave the current value untouched.
type UpdateTravelPlanInput struct {
	Origin          *string
	Destination     *string
	TravelDate      *time.Time
	Capacity        *int
	AvailableWeight *float64
	FlightNumber    *string
	DepartureTime   *time.Time
	ArrivalTime     *time.Time
	AirlineName     *string
	Status          *entity.TravelPlanStatus
}

// TravelPlanListOutput is a page of travel plans with the total before
// pagination.
type TravelPlanListOutput struct {
	Plans []*entity.TravelPlan
	Total int64
}

// TravelPlanUsecase defines the interface for travel plan business operations.
type TravelPlanUsecase interface {
	// CreateTravelPlan verifies the flight number, creates the plan and
	// notifies the traveler.
	CreateTravelPlan(ctx context.Context, userID uuid.UUID, input CreateTravelPlanInput) (*entity.TravelPlan, error)

	// GetTravelPlan returns a plan the caller is allowed to see.
	GetTravelPlan(ctx context.Context, caller Principal, planID uuid.UUID) (*entity.TravelPlan, error)

	// ListTravelPlans returns plans matching the filter. Non-admin callers
	// are forced onto their own plans regardless of the filter.
	ListTravelPlans(ctx context.Context, caller Principal, filter repository.TravelPlanFilter) (*TravelPlanListOutput, error)

	// SearchTravelPlans finds plans by route and date window. Open to any
	// authenticated caller; used by senders looking for capacity.
	SearchTravelPlans(ctx context.Context, filter repository.TravelPlanFilter) (*TravelPlanListOutput, error)

	// UpdateTravelPlan applies edits to a plan owned by the caller. Plans
	// that already carry matched orders only accept status changes.
	UpdateTravelPlan(ctx context.Context, caller Principal, planID uuid.UUID, input UpdateTravelPlanInput) (*entity.TravelPlan, error)

	// DeleteTravelPlan removes an unmatched plan owned by the caller.
	DeleteTravelPlan(ctx context.Context, caller Principal, planID uuid.UUID) error
}
