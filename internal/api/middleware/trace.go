package middleware

import (
	"log/slog"
	"net/http"

	"github.com/schoolforge/schoolforge-api/internal/api/shared"
	"github.com/schoolforge/schoolforge-api/internal/platform/logger"
)

// TraceMiddleware generates a trace ID for each request and stores it in the
// request context. The trace ID is echoed in error responses so clients can
// quote it when reporting problems, and attached to the context logger so
// every log line for the request carries it.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
