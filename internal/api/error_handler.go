package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userdir/user-directory/internal/core/domain"
)

// errorEnvelope is the canonical error envelope for all API errors:
// {success: false, code, message, details?, timestamp}.
type errorEnvelope struct {
	Success   bool                `json:"success"`
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Details   []domain.FieldError `json:"details,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy (validation / not-found / external
//     service) to its HTTP status and stable error code.
//   - Logs every failure with the request correlation ID.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, env := resolveError(err)
		env.Success = false
		env.Timestamp = time.Now().UTC()

		evt := log.Warn()
		if status >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Str("code", env.Code).
			Msg("request error")

		_ = c.JSON(status, env)
	}
}

func resolveError(err error) (int, errorEnvelope) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorEnvelope{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: ve.Fields,
		}
	}

	var ese *domain.ExternalServiceError
	if errors.As(err, &ese) {
		return http.StatusServiceUnavailable, errorEnvelope{
			Code:    "EXTERNAL_SERVICE_ERROR",
			Message: ese.Message,
		}
	}

	if errors.Is(err, domain.ErrUserNotFound) {
		return http.StatusNotFound, errorEnvelope{
			Code:    "NOT_FOUND",
			Message: "User not found",
		}
	}

	// Echo's own errors: bind failures, unknown routes, rate limiting.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorEnvelope{
			Code:    codeForStatus(he.Code),
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	return http.StatusInternalServerError, errorEnvelope{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "An unexpected error occurred",
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	case http.StatusServiceUnavailable:
		return "EXTERNAL_SERVICE_ERROR"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
