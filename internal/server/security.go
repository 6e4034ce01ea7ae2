package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/agbru/triplegen/internal/triples"
)

// SecurityConfig controls the response hardening and CORS behavior, and
// caps the bound a request may ask for.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string // "*" allows any origin
	AllowedMethods []string
	MaxBound       int64
}

// DefaultSecurityConfig allows GET from any origin and the full bound range.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxBound:       triples.MaxBound,
	}
}

// hardening is set on every response. The API only serves JSON, so nothing
// may be framed, sniffed or loaded from it.
var hardening = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
}

// SecurityMiddleware adds the hardening headers and, when CORS is enabled,
// answers preflight requests itself with 204.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range hardening {
			h.Set(kv[0], kv[1])
		}
		if !cfg.EnableCORS {
			next(w, r)
			return
		}
		if origin := allowedOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
			h.Set("Access-Control-Max-Age", "86400")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the value for Access-Control-Allow-Origin, or "" when
// origin is not allowed.
func allowedOrigin(allowed []string, origin string) string {
	switch {
	case slices.Contains(allowed, "*"):
		return "*"
	case origin != "" && slices.Contains(allowed, origin):
		return origin
	}
	return ""
}
