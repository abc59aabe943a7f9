package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationCategory is the discriminator tag of the notification union.
// Rendering and filtering switch on it rather than on the concrete type.
type NotificationCategory string

const (
	// NotificationCategoryOrder tags order-related notifications.
	NotificationCategoryOrder NotificationCategory = "order"
	// NotificationCategoryTravelPlan tags travel-plan-related notifications.
	NotificationCategoryTravelPlan NotificationCategory = "travel_plan"
)

// NotificationType identifies the concrete event within a category.
type NotificationType string

const (
	NotificationOrderCreated NotificationType = "order_created"
	NotificationOrderUpdated NotificationType = "order_updated"
	NotificationOrderDeleted NotificationType = "order_deleted"
	NotificationOrderMatched NotificationType = "order_matched"

	NotificationTravelPlanCreated NotificationType = "travel_plan_created"
	NotificationTravelPlanUpdated NotificationType = "travel_plan_updated"
	NotificationTravelPlanDeleted NotificationType = "travel_plan_deleted"
	NotificationTravelPlanMatched NotificationType = "travel_plan_matched"
)

// Category derives the discriminator from the type family. An unknown type
// yields an empty category, which repositories reject.
func (t NotificationType) Category() NotificationCategory {
	switch t {
	case NotificationOrderCreated, NotificationOrderUpdated,
		NotificationOrderDeleted, NotificationOrderMatched:
		return NotificationCategoryOrder
	case NotificationTravelPlanCreated, NotificationTravelPlanUpdated,
		NotificationTravelPlanDeleted, NotificationTravelPlanMatched:
		return NotificationCategoryTravelPlan
	default:
		return ""
	}
}

// IsValid checks if the NotificationType belongs to a known family.
func (t NotificationType) IsValid() bool {
	return t.Category() != ""
}

// Notification is the shared envelope of the order / travel-plan notification
// union. Category is always derivable from Type; it is stored explicitly so
// the persistence layer can filter by family without knowing the type list.
type Notification struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	Category  NotificationCategory `json:"category"`
	Type      NotificationType     `json:"type"`
	Message   string               `json:"message"`
	Data      map[string]any       `json:"data"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Event is the wire payload pushed over a realtime connection.
type Event struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
	Data    map[string]any   `json:"data"`
}
