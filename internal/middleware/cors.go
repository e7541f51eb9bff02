package middleware

import (
	"net/http"
	"strings"
)

// CORS enables permissive cross-origin resource sharing for the /v1/ routes,
// so the static survey form can POST from any origin (including file://).
// It handles OPTIONS preflight and leaves all other routes untouched.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/") {
			// Allow all origins. Do not use credentials with wildcard origin.
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
			if r.Method == http.MethodOptions {
				// Preflight request: reply with 204 No Content
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
