package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware logs every request once it has been served.
func LoggerMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			m := httpsnoop.CaptureMetrics(next, w, r)

			ev := logger.Info()
			if m.Code >= http.StatusInternalServerError {
				ev = logger.Error()
			}
			ev.Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.RequestURI()).
				Int("status", m.Code).
				Int64("bytes", m.Written).
				Dur("duration", m.Duration).
				Msg("request served")
		})
	}
}
