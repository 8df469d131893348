package middleware

import (
	"net/http"
	"time"

	"github.com/weiluntsai/backoffice-backend/pkg/metrics"
)

// Metrics records request counts and latencies for the prometheus endpoint.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			m.Observe(r.Method, rec.status, time.Since(start))
		})
	}
}
