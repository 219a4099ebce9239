package main

import (
	"log/slog"
	"net/http"
)

// SecurityConfig configures the middleware in front of the metrics endpoint
type SecurityConfig struct {
	// MaxBodySize caps request bodies; the endpoint only serves GETs
	MaxBodySize int64

	// AllowedMethods lists accepted HTTP methods (default GET and HEAD)
	AllowedMethods []string
}

// DefaultSecurityConfig returns the configuration used by the metrics server
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		MaxBodySize:    1 << 10,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}
}

// SecurityMiddleware rejects unexpected methods, limits body size and sets
// defensive response headers.
type SecurityMiddleware struct {
	next    http.Handler
	logger  *slog.Logger
	config  SecurityConfig
	methods map[string]bool
}

// NewSecurityMiddleware wraps next
func NewSecurityMiddleware(next http.Handler, logger *slog.Logger, config SecurityConfig) *SecurityMiddleware {
	if len(config.AllowedMethods) == 0 {
		config.AllowedMethods = DefaultSecurityConfig().AllowedMethods
	}
	methods := make(map[string]bool, len(config.AllowedMethods))
	for _, m := range config.AllowedMethods {
		methods[m] = true
	}
	return &SecurityMiddleware{
		next:    next,
		logger:  logger,
		config:  config,
		methods: methods,
	}
}

func (s *SecurityMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("Cache-Control", "no-store")

	if !s.methods[r.Method] {
		s.logger.Warn("Rejected request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.ContentLength > s.config.MaxBodySize && s.config.MaxBodySize > 0 {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	if s.config.MaxBodySize > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodySize)
	}

	s.next.ServeHTTP(w, r)
}
