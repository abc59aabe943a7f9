package entity

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the delivery state of an order.
type OrderStatus string

const (
	// OrderStatusInProcess is the initial state of every order.
	OrderStatusInProcess OrderStatus = "In Process"
	// OrderStatusConfirmed means the order has been reviewed and accepted.
	OrderStatusConfirmed OrderStatus = "Confirmed"
	// OrderStatusInTransit means the order has been matched to a travel plan.
	OrderStatusInTransit OrderStatus = "In Transit"
	// OrderStatusDelivered is a terminal state.
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled is a terminal state; soft delete maps to it.
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusInProcess, OrderStatusConfirmed, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further edits.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderPriority represents the delivery priority of an order.
type OrderPriority string

const (
	OrderPriorityStandard OrderPriority = "Standard"
	OrderPriorityExpress  OrderPriority = "Express"
)

// IsValid checks if the OrderPriority is a valid value.
func (p OrderPriority) IsValid() bool {
	return p == OrderPriorityStandard || p == OrderPriorityExpress
}

// OrderImage references one uploaded package photo in the media store.
type OrderImage struct {
	URL string `json:"url"` // Public URL of the stored image.
	Key string `json:"key"` // Media-store key used for deletion.
}

// Order is a delivery request created by a sender. It progresses linearly
// through In Process, Confirmed, In Transit and Delivered; Cancelled is
// reachable from any non-terminal state. Once Delivered or Cancelled the
// order is immutable to further edits.
type Order struct {
	ID                    uuid.UUID     `json:"id"`
	UserID                uuid.UUID     `json:"user_id"` // The owning sender.
	PackageName           string        `json:"package_name"`
	PackageDetails        string        `json:"package_details"`
	ItemDescription       string        `json:"item_description"`
	PackageValue          float64       `json:"package_value"`
	QuantityInKg          float64       `json:"quantity_in_kg"`
	Price                 float64       `json:"price"`
	AddressSendingFrom    string        `json:"address_sending_from"`
	AddressDeliveringTo   string        `json:"address_delivering_to"`
	ReceiverName          string        `json:"receiver_name"`
	ReceiverPhone         string        `json:"receiver_phone"`
	Images                []OrderImage  `json:"images"`
	Status                OrderStatus   `json:"status"`
	Priority              OrderPriority `json:"priority"`
	TrackingNumber        string        `json:"tracking_number"` // Human-facing identifier, unique at the storage layer.
	EstimatedDeliveryDate *time.Time    `json:"estimated_delivery_date"`
	SpecialInstructions   string        `json:"special_instructions"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// NewTrackingNumber generates a human-facing tracking number from the current
// unix-millisecond timestamp plus a 4-digit random suffix. Collisions are
// treated as negligible; the storage layer's unique index is the backstop.
func NewTrackingNumber() string {
	return fmt.Sprintf("TRK%d%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
