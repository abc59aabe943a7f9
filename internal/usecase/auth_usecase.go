// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ladx/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to begin registration.
type SignupInput struct {
	FullName    string
	Email       string
	Country     string
	State       string
	PhoneNumber string
	Gender      entity.Gender
	Password    string
	Role        entity.Role
}

// VerifyOTPInput confirms a pending signup.
type VerifyOTPInput struct {
	TempID uuid.UUID
	OTP    string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// AdminLoginInput defines the data required for an admin to log in.
type AdminLoginInput struct {
	Username string
	Password string
}

// ResetPasswordInput carries the emailed token and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// SignupOutput returns the handle used to complete OTP verification.
type SignupOutput struct {
	TempID uuid.UUID
}

// LoginOutput returns the session token after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// AdminLoginOutput returns the session token after a successful admin login.
type AdminLoginOutput struct {
	Token string
	Admin *entity.Admin
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Signup validates the registration, stashes it as a pending signup and
	// emails an OTP. No user row is created until the OTP is verified.
	Signup(ctx context.Context, input SignupInput) (*SignupOutput, error)

	// VerifyOTP confirms a pending signup, creates the user and sends the
	// welcome email.
	VerifyOTP(ctx context.Context, input VerifyOTPInput) (*entity.User, error)

	// ResendOTP regenerates the OTP of a pending signup and emails it again.
	ResendOTP(ctx context.Context, tempID uuid.UUID) error

	// Login authenticates a user and issues a session token, replacing any
	// previously active session.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout drops the active session for the principal.
	Logout(ctx context.Context, principalID uuid.UUID) error

	// ForgotPassword issues a reset token and emails the reset link. It
	// reports success even for unknown emails so addresses cannot be probed.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and stores the new password.
	ResetPassword(ctx context.Context, input ResetPasswordInput) error

	// AdminLogin authenticates an admin and issues a session token.
	AdminLogin(ctx context.Context, input AdminLoginInput) (*AdminLoginOutput, error)

	// ValidateSession checks that the presented token is the active one for
	// the principal. Used by the auth middleware on every request.
	ValidateSession(ctx context.Context, principalID uuid.UUID, token string) error
}
