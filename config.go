package piper

import (
	"os"
	"strconv"
)

// DefaultBatchSize is the process-wide fallback batch size (spec §6).
const DefaultBatchSize = 200

// Config holds process-wide defaults, passed explicitly at construction
// rather than kept as package globals (Design Note "Process-wide
// defaults"). The sole implicit-global exception is PIPER_DEBUG, read once
// by NewConfig, matching spec §6's "Environment" clause.
type Config struct {
	DefaultBatchSize int
	DefaultEnabled   bool
	DefaultVerbose   int
	LoggerFactory    LoggerFactory
	QueueFactory     QueueFactory

	// debugEnvOverride is non-nil when PIPER_DEBUG was set to a non-zero
	// integer; it then overrides every instance's resolved debug level.
	debugEnvOverride *int

	// metrics, if set, receives per-batch scheduler observations (§ domain
	// stack: prometheus wiring). Nil by default — no metrics overhead on
	// the hot path.
	metrics MetricsSink
}

// MetricsSink receives scheduler observations. internal/metrics.Collector
// implements it over Prometheus; nil is a valid no-op sink.
type MetricsSink interface {
	ObservePressure(segment string, pressure int)
	ObserveBatch(segment string, size int)
}

// ConfigOption customizes a Config built by NewConfig.
type ConfigOption func(*Config)

// WithDefaultBatchSize overrides the global default batch size (200).
func WithDefaultBatchSize(n int) ConfigOption {
	return func(c *Config) { c.DefaultBatchSize = n }
}

// WithDefaultEnabled overrides the global default enablement (true).
func WithDefaultEnabled(v bool) ConfigOption {
	return func(c *Config) { c.DefaultEnabled = v }
}

// WithDefaultVerbose overrides the global default verbosity (0).
func WithDefaultVerbose(n int) ConfigOption {
	return func(c *Config) { c.DefaultVerbose = n }
}

// WithLoggerFactory swaps the Logger factory (C8 collaborator).
func WithLoggerFactory(f LoggerFactory) ConfigOption {
	return func(c *Config) { c.LoggerFactory = f }
}

// WithQueueFactory swaps the Queue factory (C1 collaborator).
func WithQueueFactory(f QueueFactory) ConfigOption {
	return func(c *Config) { c.QueueFactory = f }
}

// WithMetrics attaches a MetricsSink (e.g. internal/metrics.NewCollector).
func WithMetrics(sink MetricsSink) ConfigOption {
	return func(c *Config) { c.metrics = sink }
}

// NewConfig builds a Config with the documented defaults, applies opts, and
// resolves PIPER_DEBUG once.
func NewConfig(opts ...ConfigOption) *Config {
	c := &Config{
		DefaultBatchSize: DefaultBatchSize,
		DefaultEnabled:   true,
		DefaultVerbose:   0,
		LoggerFactory: func(Path) Logger {
			return NewSlogLogger()
		},
		QueueFactory: NewSliceQueue,
	}
	for _, opt := range opts {
		opt(c)
	}
	if raw, ok := os.LookupEnv("PIPER_DEBUG"); ok {
		if n, err := strconv.Atoi(raw); err == nil && n != 0 {
			c.debugEnvOverride = &n
		}
	}
	return c
}
