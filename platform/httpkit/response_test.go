package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm_backend/platform/apperr"
	"crm_backend/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, mode string, err error) (int, ErrorResponse) {
	t.Helper()

	engine := gin.New()
	engine.Use(ErrorMode(mode))
	engine.GET("/", func(c *gin.Context) {
		HandleError(c, err)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleErrorCompatMode(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found keeps 404", apperr.NotFound("lead not found"), http.StatusNotFound},
		{"validation flattens to 500", apperr.Validation("Invalid email"), http.StatusInternalServerError},
		{"invalid state flattens to 500", apperr.InvalidState("Cannot change status of converted lead"), http.StatusInternalServerError},
		{"conversion failure is 500", apperr.Conversion("conversion failed", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := serveError(t, config.ErrorStatusCompat, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.err.(*apperr.Error).Message, body.Error)
		})
	}
}

func TestHandleErrorStrictMode(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.NotFound("lead not found"), http.StatusNotFound},
		{apperr.Validation("Email already exists"), http.StatusBadRequest},
		{apperr.InvalidState("Cannot change status of converted lead"), http.StatusUnprocessableEntity},
		{apperr.Unavailable("exports are not configured"), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		status, _ := serveError(t, config.ErrorStatusStrict, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}

func TestHandleErrorHidesUntypedErrors(t *testing.T) {
	status, body := serveError(t, config.ErrorStatusCompat, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Error)
}

func TestHandleErrorUnwrapsWrappedDomainErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), apperr.NotFound("lead not found"))
	status, body := serveError(t, config.ErrorStatusCompat, wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "lead not found", body.Error)
}
