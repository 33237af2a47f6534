// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorMapping struct {
	kind    error
	status  int
	label   string
	message string
}

// errorMappings is checked in order. An empty message means the error text is shown.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{
		apperrors.ErrLocked, http.StatusLocked, "moderator_locked",
		"Account is locked due to too many failed authentication attempts",
	},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to access this resource"},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON body.
// Coded domain errors keep their message and expose their code so clients can tell
// e.g. already_assigned apart from not_pending. Unknown errors become a bare 500.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	body := ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}

	for _, m := range errorMappings {
		if !apperrors.Is(err, m.kind) {
			continue
		}
		statusCode = m.status
		body = ErrorResponse{Error: m.label, Message: m.message}
		if body.Message == "" {
			body.Message = err.Error()
		}
		var coded *apperrors.Error
		if apperrors.As(err, &coded) {
			body.Code = coded.Code
			body.Message = err.Error()
		}
		break
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", body.Error),
			slog.String("code", body.Code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, body)
}

// HandleBadRequestGin writes a 400 for malformed JSON or path parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusBadRequest, "bad_request", "bad request", err, logger)
}

// HandleValidationErrorGin writes a 422 for request bodies that fail validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusUnprocessableEntity, "validation_error", "validation failed", err, logger)
}

func writeClientError(c *gin.Context, status int, label, logMsg string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn(logMsg, slog.Any("error", err))
	}
	c.JSON(status, ErrorResponse{Error: label, Message: err.Error()})
}
