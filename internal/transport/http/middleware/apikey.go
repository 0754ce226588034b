package middleware

import (
	"net/http"
)

const apiKeyHeader = "X-API-KEY"

// APIKey returns middleware that gates requests on a shared-secret header.
// An empty configured key disables the check (development only — main logs a
// warning at startup when that happens).
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get(apiKeyHeader)
			if got == "" {
				writeJSONError(w, http.StatusUnauthorized, "API key is missing. Please provide X-API-KEY header.")
				return
			}
			if got != key {
				writeJSONError(w, http.StatusUnauthorized, "Invalid API key.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
