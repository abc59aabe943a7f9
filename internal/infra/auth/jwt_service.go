// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ladx/config"
	"ladx/internal/domain/entity"
	"ladx/internal/domain/service"
)

const (
	defaultUserTTL  = time.Hour * 24 * 7
	defaultAdminTTL = time.Hour * 24
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string        // Secret key for signing tokens.
	userTTL  time.Duration // Time-to-live for sender and traveler tokens.
	adminTTL time.Duration // Time-to-live for admin tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.JWT == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	userTTL := defaultUserTTL
	adminTTL := defaultAdminTTL
	if cfg.Auth != nil {
		if cfg.Auth.UserSessionTTL > 0 {
			userTTL = cfg.Auth.UserSessionTTL
		}
		if cfg.Auth.AdminSessionTTL > 0 {
			adminTTL = cfg.Auth.AdminSessionTTL
		}
	}

	return &jwtService{
		secret:   cfg.SecretKey.JWT,
		userTTL:  userTTL,
		adminTTL: adminTTL,
	}, nil
}

// GenerateToken creates a signed token for the given principal.
func (s *jwtService) GenerateToken(userID uuid.UUID, email string, role entity.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),                       // Subject (who the token is for)
		"email": email,                                 // Principal's email or admin username
		"role":  role.String(),                         // Role for stateless authorization
		"iat":   now.Unix(),                            // Issued At
		"exp":   now.Add(s.TokenDuration(role)).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken checks the validity of a token string and extracts its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	email, _ := mapClaims["email"].(string)
	roleStr, _ := mapClaims["role"].(string)
	role := entity.Role(roleStr)
	if !role.IsValid() {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &service.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}

// TokenDuration returns the configured lifetime for tokens issued to the given role.
func (s *jwtService) TokenDuration(role entity.Role) time.Duration {
	if role == entity.RoleAdmin {
		return s.adminTTL
	}

	return s.userTTL
}
