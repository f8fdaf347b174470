package errorhandler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/wasteworks/wasteworks-api/internal/middleware"
	"github.com/wasteworks/wasteworks-api/internal/pkg/response"
)

// Internal logs an unexpected error with request context and responds 500.
// Domain errors are mapped in handlers; only infrastructure failures land here.
func Internal(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	log.Error().
		Str("request_id", middleware.GetRequestID(ctx)).
		Str("operation", operation).
		Err(err).
		Msg("Request error")

	response.InternalError(w)
}

// Domain logs a business-rule rejection at warn level and writes the mapped
// error response. Expected outcomes are not noise-logged at error level.
func Domain(ctx context.Context, w http.ResponseWriter, status int, code, message string, details map[string]string) {
	log.Warn().
		Str("request_id", middleware.GetRequestID(ctx)).
		Str("error_code", code).
		Int("status_code", status).
		Msg(message)

	response.ErrorWithDetails(w, status, code, message, details)
}
