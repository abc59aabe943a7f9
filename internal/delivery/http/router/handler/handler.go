// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"ladx/internal/delivery/http/middleware"
	"ladx/internal/delivery/http/response"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// principalFrom extracts the authenticated caller set by the auth middleware.
// The returned error is rendered by the global error handler.
func principalFrom(c echo.Context) (usecase.Principal, error) {
	principal, ok := c.Get(middleware.ContextKeyPrincipal).(usecase.Principal)
	if !ok {
		return usecase.Principal{}, domainerrors.ErrUnauthenticated.WrapMessage("missing caller identity")
	}

	return principal, nil
}

// pathID parses the ":id" path parameter as a UUID.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("invalid id in path")
	}

	return id, nil
}

// queryInt parses an integer query parameter, falling back to a default
// for missing or malformed values.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
