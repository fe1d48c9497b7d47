package plugindeps

import "log/slog"

// Option configures a Resolver.
type Option func(*config) error

// config holds resolver configuration.
type config struct {
	// logger is the structured logger for debug output. If nil, logging
	// is disabled and the diagnostic graph dump is skipped entirely.
	//
	// We use *slog.Logger rather than a custom interface because slog
	// separates frontend and backend by design: callers plug in any
	// handler (the CLI uses charmbracelet/log) without this package
	// knowing about it.
	logger *slog.Logger
}

// WithLogger sets the structured logger. Enabling debug level on it also
// enables the diagnostic graph dump and verbose management tracking.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
