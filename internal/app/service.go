package app

import (
	"context"
	"log"
	"time"

	"filevault/internal/auth"
	"filevault/internal/config"
	"filevault/internal/http"
)

// Service is the assembled file-storage application.
type Service struct {
	config *config.Config
	keySet *auth.KeySet
	server *http.Server
}

// NewService creates and initializes a new Service instance.
// This is a convenience wrapper around InitializeService.
func NewService() (*Service, error) {
	return InitializeService()
}

// Start warms the verification key cache and serves HTTP. A JWKS fetch
// failure at startup is logged, not fatal: the key set refreshes
// lazily on the first unknown key ID.
func (s *Service) Start() error {
	if err := s.keySet.Refresh(); err != nil {
		log.Printf("Warning: initial JWKS fetch failed, will retry on demand: %v", err)
	}

	log.Printf("Starting filevault on port %s...", s.config.Server.Port)
	return s.server.Start(":" + s.config.Server.Port)
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ShutdownTimeout exposes the configured graceful-shutdown window.
func (s *Service) ShutdownTimeout() time.Duration {
	return s.config.Server.ShutdownTimeout
}
