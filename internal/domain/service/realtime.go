package service

import (
	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// Pusher delivers realtime events to connected users. Pushing to a user
// without an open connection is a silent no-op; connectivity is best
// effort and never a delivery guarantee.
type Pusher interface {
	// Push sends an event to the given user's open connection, if any.
	Push(userID uuid.UUID, event entity.Event)

	// IsOnline reports whether the user currently has an open connection.
	IsOnline(userID uuid.UUID) bool
}
