package host

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures a document host.
type Config struct {
	// RootTag is the tag of each hosted document's root element.
	RootTag string

	// ReadTimeout bounds how long a connection may stay silent before
	// a read fails.
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// Logger receives structured host logs. Defaults to slog.Default().
	Logger *slog.Logger

	// MetricsNamespace is the Prometheus namespace (default "loom").
	MetricsNamespace string

	// MetricsRegistry is the Prometheus registerer.
	// Default: prometheus.DefaultRegisterer.
	MetricsRegistry prometheus.Registerer
}

// DefaultConfig returns the default host configuration.
func DefaultConfig() Config {
	return Config{
		RootTag:          "body",
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		MetricsNamespace: "loom",
	}
}

// Option customizes a Config.
type Option func(*Config)

// WithRootTag sets the document root element tag.
func WithRootTag(tag string) Option {
	return func(c *Config) { c.RootTag = tag }
}

// WithLogger sets the host logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithTimeouts sets the read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

// WithMetricsNamespace sets the Prometheus namespace.
func WithMetricsNamespace(ns string) Option {
	return func(c *Config) { c.MetricsNamespace = ns }
}

// WithMetricsRegistry sets the Prometheus registerer.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(c *Config) { c.MetricsRegistry = reg }
}
