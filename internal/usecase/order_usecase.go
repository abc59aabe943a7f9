package usecase

import (
	"context"
	"io"
	"time"

	"ladx/internal/domain/entity"
	"ladx/internal/domain/repository"

	"github.com/google/uuid"
)

// OrderImageUpload is one package photo attached to an order request.
type OrderImageUpload struct {
	Filename string
	MIME     string
	Content  io.Reader
}

// CreateOrderInput defines the data required to create a delivery order.
type CreateOrderInput struct {
	PackageName           string
	PackageDetails        string
	ItemDescription       string
	PackageValue          float64
	QuantityInKg          float64
	Price                 float64
	AddressSendingFrom    string
	AddressDeliveringTo   string
	ReceiverName          string
	ReceiverPhone         string
	Priority              entity.OrderPriority
	EstimatedDeliveryDate *time.Time
	SpecialInstructions   string
	Images                []OrderImageUpload
}

// UpdateOrderInput carries the editable order fields. Nil pointers leave
// the current value untouched.
type UpdateOrderInput struct {
	PackageName           *string
	PackageDetails        *string
	ItemDescription       *string
	PackageValue          *float64
	QuantityInKg          *float64
	Price                 *float64
	AddressSendingFrom    *string
	AddressDeliveringTo   *string
	ReceiverName          *string
	ReceiverPhone         *string
	Priority              *entity.OrderPriority
	EstimatedDeliveryDate *time.Time
	SpecialInstructions   *string

	// Images are appended to the order's photo list. Supplying any
	// retires the previously stored photos from the media store.
	Images []OrderImageUpload
}

// OrderListOutput is a page of orders with the total before pagination.
type OrderListOutput struct {
	Orders []*entity.Order
	Total  int64
}

// OrderUsecase defines the interface for order business operations.
type OrderUsecase interface {
	// CreateOrder stores the uploaded images, creates the order with a
	// fresh tracking number and notifies the sender.
	CreateOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*entity.Order, error)

	// GetOrder returns an order the caller is allowed to see. Senders only
	// see their own orders; admins see all.
	GetOrder(ctx context.Context, caller Principal, orderID uuid.UUID) (*entity.Order, error)

	// TrackOrder resolves a tracking number without authentication.
	TrackOrder(ctx context.Context, trackingNumber string) (*entity.Order, error)

	// TrackingQR renders the QR code PNG for an order's tracking page.
	TrackingQR(ctx context.Context, caller Principal, orderID uuid.UUID) ([]byte, error)

	// ListOrders returns orders matching the filter. Non-admin callers are
	// forced onto their own orders regardless of the filter.
	ListOrders(ctx context.Context, caller Principal, filter repository.OrderFilter) (*OrderListOutput, error)

	// UpdateOrder applies edits to a non-terminal order owned by the caller.
	UpdateOrder(ctx context.Context, caller Principal, orderID uuid.UUID, input UpdateOrderInput) (*entity.Order, error)

	// CancelOrder cancels a non-terminal order owned by the caller. The row
	// is kept; the status becomes Cancelled.
	CancelOrder(ctx context.Context, caller Principal, orderID uuid.UUID) error
}

// Principal identifies the authenticated caller inside the usecase layer.
type Principal struct {
	ID   uuid.UUID
	Role entity.Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}
