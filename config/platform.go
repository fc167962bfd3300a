package config

import (
	"errors"
	"strings"
	"time"
)

// PlatformConfig contains configuration for the GameForge platform API client.
type PlatformConfig struct {
	// BaseURL is the root URL of the platform REST API.
	BaseURL string `env:"API_URL" envDefault:"http://localhost:9090"`

	// APIToken authenticates this service against the platform API.
	APIToken string `env:"API_TOKEN"`

	// Timeout bounds each individual platform API call.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to platform API configuration values.
func (p *PlatformConfig) Sanitize() {
	p.BaseURL = strings.TrimSpace(p.BaseURL)
	if p.Timeout <= 0 {
		p.Timeout = 15 * time.Second
	}
}

// Validate checks that the platform client can be constructed.
func (p *PlatformConfig) Validate() error {
	if p.BaseURL == "" {
		return errors.New("platform api url is required")
	}
	return nil
}
