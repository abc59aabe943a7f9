// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. A user acts either as a sender
// (creating delivery orders) or a traveler (offering luggage capacity);
// the role can be switched by self-service before any matching happens.
type User struct {
	ID          uuid.UUID  `json:"id"`           // The Global Unique Identifier (GUID) for the user.
	FullName    string     `json:"full_name"`    // The user's full display name.
	Email       string     `json:"email"`        // The user's primary contact email, used as the login identifier.
	Country     string     `json:"country"`      // Country of residence.
	State       string     `json:"state"`        // State or province of residence.
	PhoneNumber string     `json:"phone_number"` // Contact phone number.
	Gender      Gender     `json:"gender"`       // Declared gender.
	Password    string     `json:"-"`            // The bcrypt hash of the user's password, never the plaintext.
	Role        Role       `json:"role"`         // Current role, defaults to sender on signup.
	IsVerified  bool       `json:"is_verified"`  // True once the signup OTP has been verified.
	KYCID       *uuid.UUID `json:"kyc_id"`       // Optional reference to a submitted KYC record.

	// Password-reset support. The token is stored sha256-hashed and expires.
	ResetPasswordToken   string     `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"` // Timestamp of when this user account was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification to this user's data.
}

// Admin is a distinct administrative principal with its own credential set.
// Admin tokens carry the admin role and are validated against the session
// store the same way user tokens are.
type Admin struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
