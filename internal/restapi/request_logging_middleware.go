package restapi

import (
	"log/slog"
	"net/http"
	"time"

	"transitpulse.org/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// NewRequestLoggingMiddleware logs each request with its request id,
// status, and duration, and stores the logger in the request context.
func NewRequestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			reqID, _ := r.Context().Value(RequestIDKey).(string)
			reqLogger := logger.With(slog.String("request_id", reqID))
			ctx := logging.WithLogger(r.Context(), reqLogger)

			next.ServeHTTP(rec, r.WithContext(ctx))

			logging.LogOperation(reqLogger, "request_completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("elapsed", time.Since(started)))
		})
	}
}
