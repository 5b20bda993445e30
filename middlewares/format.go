package middlewares

import (
	"context"
	"net/http"

	"PalmCare/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Error codes carried in every error payload.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "RESOURCE_NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeNothingQueued     = "NOTHING_QUEUED"
	CodeConflict          = "CONFLICT"
	CodeNoSession         = "NO_SESSION"
	CodeRateLimited       = "RATE_LIMITED"
	CodeCancelled         = "REQUEST_CANCELLED"
	CodeInternal          = "INTERNAL_ERROR"
)

// StatusClientClosedRequest is returned when the client went away mid-request.
const StatusClientClosedRequest = 499

// ErrorResponse is the error payload.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// RespondError maps err onto a status and code and writes the payload.
// Unexpected errors are logged and their message is not exposed.
func RespondError(c *gin.Context, err error) {
	status, response := classify(err)
	if status >= http.StatusInternalServerError {
		Logger(c).Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	} else {
		Logger(c).Debug().Err(err).Int("status", status).Msg("Request rejected")
	}
	c.AbortWithStatusJSON(status, response)
}

// HttpError writes a payload for a failure detected in the handler itself.
func HttpError(c *gin.Context, message string, status int, code string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: http.StatusText(status), Message: message, Code: code})
}

func classify(err error) (int, ErrorResponse) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, ErrorResponse{Error: "Bad Request", Message: "validation failed", Code: CodeValidation, Details: verrs}
	case errors.Is(err, models.ErrRecordNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "Not Found", Message: err.Error(), Code: CodeNotFound}
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict, ErrorResponse{Error: "Conflict", Message: err.Error(), Code: CodeInvalidTransition}
	case errors.Is(err, models.ErrInsufficientStock):
		return http.StatusConflict, ErrorResponse{Error: "Conflict", Message: err.Error(), Code: CodeInsufficientStock}
	case errors.Is(err, models.ErrDuplicateKey):
		return http.StatusConflict, ErrorResponse{Error: "Conflict", Message: err.Error(), Code: CodeConflict}
	case errors.Is(err, models.ErrNothingQueued):
		return http.StatusNotFound, ErrorResponse{Error: "Not Found", Message: err.Error(), Code: CodeNothingQueued}
	case errors.Is(err, models.ErrNoSession):
		return http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Message: "no active session", Code: CodeNoSession}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusClientClosedRequest, ErrorResponse{Error: "Client Closed Request", Message: "request cancelled", Code: CodeCancelled}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error", Message: "an unexpected error occurred", Code: CodeInternal}
}

// Logger returns the request scoped logger set by RequestLogger, or a no-op
// logger.
func Logger(c *gin.Context) *zerolog.Logger {
	if l, ok := c.Get(loggerKey); ok {
		if logger, ok := l.(zerolog.Logger); ok {
			return &logger
		}
	}
	nop := zerolog.Nop()
	return &nop
}
