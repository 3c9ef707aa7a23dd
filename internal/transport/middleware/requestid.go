package middleware

import (
	"net/http"

	"github.com/alphagrips/academy-backend/pkg/logger"

	"github.com/google/uuid"
)

// RequestID tags every request with a trace id, honoring one supplied by the
// caller so the admin frontend and webhook retries can correlate their own
// attempts. The id rides on the context logger and the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
