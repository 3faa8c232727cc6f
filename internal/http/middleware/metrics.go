package middleware

import (
	"net/http"
	"strconv"
	"time"

	"fyyur/internal/metrics"
)

// Metrics records request counts and latencies labelled by the matched
// ServeMux pattern. It must wrap the mux directly so the pattern is visible
// after dispatch.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrap(w)

			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rw.statusCode), time.Since(start))
		})
	}
}
