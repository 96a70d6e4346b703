package middleware

import (
	"log/slog"
	"net/http"

	"github.com/comicverse/hub/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// correlation_id, profile, trace_id and span_id. Mount it after
// RequestLogging and Tracing so those values are already present.
func RequestLogger(base *slog.Logger, profile string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if profile != "" {
				ctx = logger.WithProfile(ctx, profile)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
