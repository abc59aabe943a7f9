package service

import (
	"context"
	"errors"
	"time"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// Session/OTP store errors.
var (
	// ErrSessionNotFound is returned when no session exists for a principal.
	ErrSessionNotFound = errors.New("session not found")
	// ErrPendingSignupNotFound is returned when a pending signup has
	// expired or never existed.
	ErrPendingSignupNotFound = errors.New("pending signup not found")
)

// PendingSignup holds a registration that is awaiting OTP verification.
// Nothing is written to the user table until the OTP is confirmed.
type PendingSignup struct {
	TempID      uuid.UUID     `json:"temp_id"`
	FullName    string        `json:"full_name"`
	Email       string        `json:"email"`
	Country     string        `json:"country"`
	State       string        `json:"state"`
	PhoneNumber string        `json:"phone_number"`
	Gender      entity.Gender `json:"gender"`
	Password    string        `json:"password"` // already hashed
	Role        entity.Role   `json:"role"`
	OTP         string        `json:"otp"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// SessionStore tracks the single active token per principal and the
// short-lived signup state. Overwriting a session token invalidates any
// previously issued token for the same principal.
type SessionStore interface {
	// SaveSession stores the active token for a principal with the given TTL,
	// replacing any existing one.
	SaveSession(ctx context.Context, principalID uuid.UUID, token string, ttl time.Duration) error

	// GetSession returns the active token for a principal.
	// Returns ErrSessionNotFound when none exists.
	GetSession(ctx context.Context, principalID uuid.UUID) (string, error)

	// DeleteSession removes a principal's active session. Deleting a
	// missing session is not an error.
	DeleteSession(ctx context.Context, principalID uuid.UUID) error

	// SavePendingSignup stores a registration awaiting OTP verification.
	SavePendingSignup(ctx context.Context, signup *PendingSignup, ttl time.Duration) error

	// GetPendingSignup returns a pending signup by its temporary ID.
	// Returns ErrPendingSignupNotFound when expired or missing.
	GetPendingSignup(ctx context.Context, tempID uuid.UUID) (*PendingSignup, error)

	// DeletePendingSignup removes a pending signup after it is consumed.
	DeletePendingSignup(ctx context.Context, tempID uuid.UUID) error
}
