package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/tinywin-backend/internal/metrics"
)

// Metrics records request counts and latencies labelled by route pattern.
// It must sit directly around the ServeMux so the matched pattern is visible.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			labels := []string{r.Method, route(r), strconv.Itoa(sw.status)}
			metrics.HTTPRequests.WithLabelValues(labels...).Inc()
			metrics.HTTPDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		})
	}
}
