package backupkit

import (
	"strings"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Destination type to use (directory)
	Destination string `env:"BACKUPKIT_DESTINATION,default:directory"`

	// Directory destination configuration
	Directory string `env:"BACKUPKIT_DIRECTORY"`

	// Wrap the destination so saves and deletes are rejected (restore runs)
	ReadOnly bool `env:"BACKUPKIT_READ_ONLY,default:false"`

	// Algorithm used to verify cross-device copies
	ChecksumAlgorithm string `env:"BACKUPKIT_CHECKSUM_ALGORITHM,default:xxhash"`

	// Logging
	LogLevel string `env:"BACKUPKIT_LOG_LEVEL,default:info"`

	// File exclusion filter
	ExcludeSource     string `env:"BACKUPKIT_EXCLUDE_SOURCE"`
	ExcludeSourceName string `env:"BACKUPKIT_EXCLUDE_SOURCE_NAME"`
	ExcludeFilepaths  string `env:"BACKUPKIT_EXCLUDE_FILEPATHS"` // comma-separated globs
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExcludePatterns splits ExcludeFilepaths into its glob patterns, keeping
// their order and dropping blanks.
func (c *Config) ExcludePatterns() []string {
	if c.ExcludeFilepaths == "" {
		return nil
	}
	parts := strings.Split(c.ExcludeFilepaths, ",")
	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
