package middleware

import (
	"strings"

	"ladx/internal/delivery/http/response"
	"ladx/internal/domain/entity"
	"ladx/internal/domain/service"
	"ladx/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID    = "userID"
	ContextKeyPrincipal = "principal"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	authUC   usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, authUC: authUC}
}

// AccessTokenCookie is the cookie browser clients carry the token in when
// no Authorization header is set.
const AccessTokenCookie = "access_token"

// Authenticate validates the bearer token and checks it is still the
// active session for its owner. A token replaced by a newer login, or
// dropped by logout, is rejected even if its signature is still valid.
// The token comes from the Authorization header, or failing that from
// the access_token cookie.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var tokenString string
		if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
			}
		} else if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
			tokenString = cookie.Value
		} else {
			return response.Unauthorized(c, "MISSING_TOKEN", "Missing credentials: no Authorization header or access_token cookie")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		if err := m.authUC.ValidateSession(c.Request().Context(), claims.UserID, tokenString); err != nil {
			return response.Unauthorized(c, "SESSION_EXPIRED", "Session is no longer valid, please log in again")
		}

		// Set caller info on the context for handlers to use
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyPrincipal, usecase.Principal{ID: claims.UserID, Role: claims.Role})

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the caller has a
// specific role. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(ContextKeyPrincipal).(usecase.Principal)
			if !ok {
				return response.Forbidden(c, "ROLE_MISSING", "Permission denied: role information missing")
			}

			if principal.Role != requiredRole {
				return response.Forbidden(c, "ROLE_REQUIRED", "Permission denied: require '"+string(requiredRole)+"' role")
			}

			return next(c)
		}
	}
}

// RequireAdmin restricts a route to admin callers.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)(next)
}
