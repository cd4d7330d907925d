package backupkit

import (
	"go.uber.org/zap"
)

// Option represents a configuration option for destinations and filters
type Option func(*Options)

// Options contains all options shared by destinations and filters
type Options struct {
	// Logger receives structured logs. Defaults to a no-op logger.
	Logger *zap.Logger

	// ChecksumAlgorithm verifies copied artifacts when a save cannot be done
	// with a rename. Defaults to ChecksumXXHash.
	ChecksumAlgorithm ChecksumAlgorithm
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithChecksumAlgorithm sets the algorithm used to verify copies
func WithChecksumAlgorithm(algorithm ChecksumAlgorithm) Option {
	return func(o *Options) {
		o.ChecksumAlgorithm = algorithm
	}
}

// ProcessOptions applies options over the defaults.
func ProcessOptions(options ...Option) *Options {
	opts := &Options{
		Logger:            zap.NewNop(),
		ChecksumAlgorithm: ChecksumXXHash,
	}
	for _, option := range options {
		option(opts)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}
