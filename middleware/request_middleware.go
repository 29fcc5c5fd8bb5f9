package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestLogMiddleware tags each request with an id and logs method, path
// and latency. The id is echoed in X-Request-ID for client-side correlation.
func RequestLogMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			w.Header().Set("X-Request-ID", requestID)

			start := time.Now()
			next.ServeHTTP(w, r)
			log.Printf("[%s] %s %s completed in %s", requestID, r.Method, r.URL.Path, time.Since(start))
		})
	}
}
