package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ladx/internal/delivery/http/validator"
	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase records the last signup and returns canned outputs.
type stubAuthUsecase struct {
	usecase.AuthUsecase

	signupInput usecase.SignupInput
	tempID      uuid.UUID
}

func (s *stubAuthUsecase) Signup(_ context.Context, input usecase.SignupInput) (*usecase.SignupOutput, error) {
	s.signupInput = input

	return &usecase.SignupOutput{TempID: s.tempID}, nil
}

func newTestEchoContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Integration(t *testing.T) {
	stub := &stubAuthUsecase{tempID: uuid.New()}
	handler := &AuthHandler{
		authUC: stub,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	body := `{
		"full_name": "Ada Obi",
		"email": "ada@example.com",
		"country": "Nigeria",
		"phone_number": "+2348012345678",
		"password": "password123",
		"role": "sender"
	}`
	c, rec := newTestEchoContext(t, http.MethodPost, "/api/v1/auth/signup", body)

	require.NoError(t, handler.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, stub.tempID.String())
	assert.Contains(t, responseBody, "OTP sent to your email")

	assert.Equal(t, "ada@example.com", stub.signupInput.Email)
	assert.Equal(t, entity.RoleSender, stub.signupInput.Role)
}

func TestAuthHandler_Signup_ValidationError(t *testing.T) {
	handler := &AuthHandler{
		authUC: &stubAuthUsecase{tempID: uuid.New()},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	// Password below the minimum length and a role outside the enum.
	body := `{
		"full_name": "Ada Obi",
		"email": "ada@example.com",
		"country": "Nigeria",
		"phone_number": "+2348012345678",
		"password": "short",
		"role": "admin"
	}`
	c, rec := newTestEchoContext(t, http.MethodPost, "/api/v1/auth/signup", body)

	require.NoError(t, handler.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestEchoContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestQueryInt(t *testing.T) {
	c, _ := newTestEchoContext(t, http.MethodGet, "/orders?page=3&per_page=abc&limit=-5", "")

	assert.Equal(t, 3, queryInt(c, "page", 1))
	assert.Equal(t, 20, queryInt(c, "per_page", 20))
	assert.Equal(t, 50, queryInt(c, "limit", 50))
	assert.Equal(t, 1, queryInt(c, "missing", 1))
}

func TestPathID(t *testing.T) {
	id := uuid.New()

	c, _ := newTestEchoContext(t, http.MethodGet, "/orders/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	parsed, err := pathID(c)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	c, _ = newTestEchoContext(t, http.MethodGet, "/orders/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	_, err = pathID(c)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
