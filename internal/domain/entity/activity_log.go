package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only audit record. Normal flows only ever create
// entries; nothing mutates or deletes them.
type ActivityLog struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Action    string         `json:"action"` // e.g. "create", "update", "delete", "login".
	Entity    string         `json:"entity"` // e.g. "order", "travel_plan", "user".
	EntityID  *uuid.UUID     `json:"entity_id"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}
