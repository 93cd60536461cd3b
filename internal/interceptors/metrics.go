package interceptors

import (
	"net/http"
	"time"

	"github.com/nicjohnson145/kvgate/internal/metrics"
)

const unmatchedRoute = "unmatched"

// NewMetricsMiddleware must sit directly around the ServeMux, since the mux records the matched pattern on the
// request it is handed
func NewMetricsMiddleware(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newResponseRecorder(w, false)

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}
			collector.ObserveRequest(route, r.Method, rec.Status(), time.Since(start))
		})
	}
}
