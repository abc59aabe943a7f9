package repository

import (
	"context"
	"errors"
	"time"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter narrows order listings. Zero values mean "no constraint".
type OrderFilter struct {
	UserID         *uuid.UUID
	Status         entity.OrderStatus
	Priority       entity.OrderPriority
	TrackingNumber string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
	Page           int
	PerPage        int
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByTrackingNumber retrieves an order by tracking number.
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Order, error)

	// Update persists changes to an existing order.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves orders matching the filter, newest first, with the
	// total count before pagination.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)

	// CountByStatus counts orders per status.
	CountByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error)
}
