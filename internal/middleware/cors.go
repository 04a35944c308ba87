package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS wraps the whole router so preflight requests are answered before
// routing. Credentials, methods and headers are allowed for every listed
// origin. An empty list disables CORS headers entirely rather than
// allowing every origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
