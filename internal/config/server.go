package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/errors"
)

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	Addr              string // empty means run the terminal game instead
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxBodyBytes      int64
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		MaxBodyBytes:      1 << 16,
	}
}

// Enabled reports whether the HTTP surface should be started.
func (s *ServerConfig) Enabled() bool {
	return s.Addr != ""
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"read header timeout", s.ReadHeaderTimeout},
		{"read timeout", s.ReadTimeout},
		{"write timeout", s.WriteTimeout},
		{"idle timeout", s.IdleTimeout},
		{"shutdown timeout", s.ShutdownTimeout},
	}
	for _, to := range timeouts {
		if to.d <= 0 {
			return fmt.Errorf("%s (%v) must be positive: %w", to.name, to.d, errors.ErrInvalidConfig)
		}
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes (%d) must be positive: %w", s.MaxBodyBytes, errors.ErrInvalidConfig)
	}
	return nil
}
