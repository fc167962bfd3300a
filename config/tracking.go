package config

import "time"

// TrackingConfig contains generation job tracking configuration.
type TrackingConfig struct {
	// DefaultCadence is the polling interval used when a request does not
	// specify one.
	DefaultCadence time.Duration `env:"DEFAULT_CADENCE" envDefault:"2s"`

	// DefaultTimeout is the wall-clock tracking budget used when a request
	// does not specify one.
	DefaultTimeout time.Duration `env:"DEFAULT_TIMEOUT" envDefault:"10m"`

	// MinCadence is the lowest polling interval a caller may request.
	MinCadence time.Duration `env:"MIN_CADENCE" envDefault:"250ms"`

	// MaxTimeout is the highest tracking budget a caller may request.
	MaxTimeout time.Duration `env:"MAX_TIMEOUT" envDefault:"1h"`

	// ShutdownGrace bounds how long shutdown waits for in-flight tracks.
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`
}

// Sanitize applies guardrails to tracking configuration values.
func (t *TrackingConfig) Sanitize() {
	if t.DefaultCadence <= 0 {
		t.DefaultCadence = 2 * time.Second
	}
	if t.DefaultTimeout <= 0 {
		t.DefaultTimeout = 10 * time.Minute
	}
	if t.MinCadence <= 0 {
		t.MinCadence = 250 * time.Millisecond
	}
	if t.MaxTimeout < t.DefaultTimeout {
		t.MaxTimeout = time.Hour
	}
	if t.ShutdownGrace <= 0 {
		t.ShutdownGrace = 10 * time.Second
	}
}
