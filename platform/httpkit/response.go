// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"errors"
	"net/http"

	"crm_backend/platform/apperr"
	"crm_backend/platform/config"

	"github.com/gin-gonic/gin"
)

// ContextErrorModeKey is the gin context key holding the error status mode.
const ContextErrorModeKey = "errorStatusMode"

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorMode stores the configured error status mode on every request.
func ErrorMode(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextErrorModeKey, mode)
		c.Next()
	}
}

// HandleError maps domain errors to HTTP responses.
// In strict mode the status comes from the error kind. In compat mode only a
// missing resource gets 404 and every other failure is a 500.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	strict := c.GetString(ContextErrorModeKey) == config.ErrorStatusStrict

	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		status := domainErr.CompatHTTPStatus()
		if strict {
			status = domainErr.HTTPStatus()
		}
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, ErrorResponse{
			Error:   domainErr.Message,
			Details: domainErr.Details,
		})
		return true
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	return true
}
