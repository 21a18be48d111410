package server

import (
	"net/http"

	"github.com/go-chi/cors"
)

// SecurityConfig bounds what a single request may ask for and controls the
// response hardening headers.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string
	// MaxSeeds caps the canonical length of one batch.
	MaxSeeds int
	// MaxIterations caps the iteration count of one request.
	MaxIterations int64
	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64
}

// DefaultSecurityConfig returns the configuration used by New.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		MaxSeeds:       1 << 20,
		MaxIterations:  1 << 24,
		MaxBodyBytes:   8 << 20,
	}
}

// SecurityMiddleware sets defensive response headers before calling next.
func SecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware returns the CORS handler for config, or nil when CORS is
// disabled.
func corsMiddleware(config SecurityConfig) func(http.Handler) http.Handler {
	if !config.EnableCORS {
		return nil
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: config.AllowedOrigins,
		AllowedMethods: config.AllowedMethods,
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
