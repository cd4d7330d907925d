// Package filter holds the hooks the backup pipeline runs while it enumerates
// source files. ExcludeFilter drops paths that match configured globs.
package filter

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gobeaver/backupkit"
)

// FieldExcludeFilepaths is the configuration key of the exclusion globs.
const FieldExcludeFilepaths = "exclude_filepaths"

// Params describes the candidate path the pipeline is about to back up.
type Params struct {
	// Source names the upstream source being enumerated.
	Source string
	// BasePath is stripped from candidate paths before matching.
	BasePath string
	// Operation is the running operation, usually OperationBackup.
	Operation string
}

// FileBackupFilter is called once per candidate path during backup file
// discovery. Returning false removes the path from the backup set.
type FileBackupFilter interface {
	BeforeFileBackup(path string, params Params) (string, bool)
}

// Config configures an ExcludeFilter.
type Config struct {
	// Source binds the filter to one source. Empty disables the filter.
	Source string
	// SourceName is the display name used in the settings form.
	// Defaults to Source.
	SourceName string
	// ExcludeFilepaths are glob patterns, tried in order.
	ExcludeFilepaths []string
}

// DefaultConfig returns an unbound filter configuration.
func DefaultConfig() Config {
	return Config{ExcludeFilepaths: []string{}}
}

// ExcludeFilter removes paths matching glob patterns from a single source.
//
// Patterns are compiled on first use and cached on the filter, so separate
// filters never share state. SetExcludeFilepaths drops the cache.
type ExcludeFilter struct {
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	compiled []compiledPattern
}

// New creates an exclusion filter.
func New(cfg Config, options ...backupkit.Option) *ExcludeFilter {
	opts := backupkit.ProcessOptions(options...)
	cfg.ExcludeFilepaths = append([]string(nil), cfg.ExcludeFilepaths...)
	return &ExcludeFilter{
		cfg:    cfg,
		logger: opts.Logger.With(zap.String("filter", "exclude"), zap.String("source", cfg.Source)),
	}
}

// FromConfig creates an exclusion filter from the environment configuration.
func FromConfig(cfg *backupkit.Config, options ...backupkit.Option) *ExcludeFilter {
	return New(Config{
		Source:           cfg.ExcludeSource,
		SourceName:       cfg.ExcludeSourceName,
		ExcludeFilepaths: cfg.ExcludePatterns(),
	}, options...)
}

// Scoped reports whether the filter is bound to a source.
func (f *ExcludeFilter) Scoped() bool {
	return f.cfg.Source != ""
}

// ExcludeFilepaths returns the configured patterns.
func (f *ExcludeFilter) ExcludeFilepaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cfg.ExcludeFilepaths...)
}

// SetExcludeFilepaths replaces the patterns and invalidates the compiled cache.
func (f *ExcludeFilter) SetExcludeFilepaths(patterns []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg.ExcludeFilepaths = append([]string(nil), patterns...)
	f.compiled = nil
}

// BeforeFileBackup implements FileBackupFilter. It returns the path unchanged
// unless the filter is bound to params.Source and the path, relative to
// params.BasePath, matches one of the patterns.
func (f *ExcludeFilter) BeforeFileBackup(path string, params Params) (string, bool) {
	if f.cfg.Source == "" || f.cfg.Source != params.Source {
		return path, true
	}

	if pattern, ok := f.Match(relativePath(path, params.BasePath)); ok {
		f.logger.Debug("path excluded", zap.String("path", path), zap.String("pattern", pattern))
		return "", false
	}
	return path, true
}

// Match tests a base-relative path against the patterns in order and returns
// the first one that matches.
func (f *ExcludeFilter) Match(relPath string) (string, bool) {
	for _, p := range f.patterns() {
		if p.match(relPath) {
			return p.pattern, true
		}
	}
	return "", false
}

// relativePath strips basePath from path. A base path given without its
// trailing slash leaves one behind, which is dropped too.
func relativePath(path, basePath string) string {
	if basePath == "" || !strings.HasPrefix(path, basePath) {
		return path
	}
	return strings.TrimPrefix(path[len(basePath):], "/")
}

func (f *ExcludeFilter) patterns() []compiledPattern {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.compiled != nil {
		return f.compiled
	}

	compiled := make([]compiledPattern, 0, len(f.cfg.ExcludeFilepaths))
	for _, pattern := range f.cfg.ExcludeFilepaths {
		p, err := compilePattern(pattern)
		if err != nil {
			f.logger.Warn("ignoring invalid exclude pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		compiled = append(compiled, p)
	}
	f.compiled = compiled
	return compiled
}

// Chain runs filters in order and stops at the first exclusion.
type Chain []FileBackupFilter

// BeforeFileBackup implements FileBackupFilter
func (c Chain) BeforeFileBackup(path string, params Params) (string, bool) {
	for _, filter := range c {
		var ok bool
		if path, ok = filter.BeforeFileBackup(path, params); !ok {
			return "", false
		}
	}
	return path, true
}

var (
	_ FileBackupFilter = (*ExcludeFilter)(nil)
	_ FileBackupFilter = Chain(nil)
)
