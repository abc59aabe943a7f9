package repository

import (
	"context"
	"errors"
	"time"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTravelPlanNotFound is returned when a travel plan is not found.
var ErrTravelPlanNotFound = errors.New("travel plan not found")

// TravelPlanFilter narrows travel plan listings.
type TravelPlanFilter struct {
	UserID      *uuid.UUID
	Origin      string
	Destination string
	TravelFrom  *time.Time
	TravelTo    *time.Time
	Unmatched   bool

	// SortByTravelDate orders results by ascending travel date instead of
	// newest first. Used by route search.
	SortByTravelDate bool

	Page    int
	PerPage int
}

// TravelPlanRepository defines the interface for travel plan persistence.
type TravelPlanRepository interface {
	// Create persists a new travel plan.
	Create(ctx context.Context, plan *entity.TravelPlan) error

	// FindByID retrieves a travel plan by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPlan, error)

	// Update persists changes to an existing travel plan.
	Update(ctx context.Context, plan *entity.TravelPlan) error

	// Delete removes a travel plan.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves travel plans matching the filter, newest first, with
	// the total count before pagination.
	List(ctx context.Context, filter TravelPlanFilter) ([]*entity.TravelPlan, int64, error)

	// Count counts all travel plans.
	Count(ctx context.Context) (int64, error)
}
