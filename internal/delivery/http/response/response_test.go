package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestSuccessEnvelope(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, Success(c, http.StatusCreated, map[string]string{"id": "42"}, "Order created successfully"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"message":"Order created successfully"`)
	assert.Contains(t, body, `"id":"42"`)
	assert.NotContains(t, body, `"error"`)
}

func TestSuccessOmitsEmptyFields(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, Success(c, http.StatusOK, nil, ""))

	body := rec.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.NotContains(t, body, `"message"`)
	assert.NotContains(t, body, `"data"`)
}

func TestErrorEnvelope(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, NotFound(c, "ORDER_NOT_FOUND", "Order not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"success":false`)
	assert.Contains(t, body, `"code":"ORDER_NOT_FOUND"`)
	assert.NotContains(t, body, `"data"`)
}

func TestErrorDefaultsMessageToStatusText(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, Error(c, http.StatusConflict, "CONFLICT", "", ""))

	assert.Contains(t, rec.Body.String(), `"message":"Conflict"`)
}
