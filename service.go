package backupkit

import (
	"errors"
	"fmt"

	"github.com/gobeaver/beaver-kit/config"
)

// Builder provides a way to create destinations with custom env prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Config loads the configuration using the builder's prefix
func (b *Builder) Config() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New creates a new destination using the builder's prefix
func (b *Builder) New(options ...Option) (Destination, error) {
	cfg, err := b.Config()
	if err != nil {
		return nil, err
	}
	return New(cfg, options...)
}

// New creates a new destination with given config. The checksum algorithm
// from the config is applied before options, so options take precedence.
func New(cfg *Config, options ...Option) (Destination, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := make([]Option, 0, len(options)+1)
	if cfg.ChecksumAlgorithm != "" {
		opts = append(opts, WithChecksumAlgorithm(ChecksumAlgorithm(cfg.ChecksumAlgorithm)))
	}
	opts = append(opts, options...)

	dest, err := CreateDestination(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}

	if cfg.ReadOnly {
		dest = NewReadOnly(dest)
	}

	return dest, nil
}

// NewFromEnv creates a destination from environment variables (convenience constructor)
func NewFromEnv(options ...Option) (Destination, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, options...)
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg.Destination == "" {
		return errors.New("destination is required")
	}

	// Other registered destinations validate their own settings.
	if cfg.Destination == "directory" && cfg.Directory == "" {
		return fmt.Errorf("%w: directory is required for directory destination", ErrNotConfigured)
	}

	if cfg.ChecksumAlgorithm != "" {
		if _, err := NewHasher(ChecksumAlgorithm(cfg.ChecksumAlgorithm)); err != nil {
			return err
		}
	}

	return nil
}
