package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/observability"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(rw, r)
			duration := time.Since(start)

			if metrics == nil {
				return
			}

			// Use route pattern instead of raw path to avoid high cardinality
			route := r.Pattern
			if route == "" {
				route = r.URL.Path
			}

			metrics.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())
		})
	}
}
