package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds total handler latency by putting a deadline on the
// request context. The deadline propagates into the store driver, which
// cancels the in-flight statement; the handler then maps the resulting
// context.DeadlineExceeded to a 408.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
