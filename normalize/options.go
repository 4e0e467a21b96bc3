package normalize

import "github.com/MiaInturi/bundler/internal/fileutil"

// Dereferencer performs an independent $ref-resolution pass against a
// file's own directory, tagging every subtree it inlines with x-origin.
// Normalize calls it only from the discriminator resolver's on-demand
// load, when a mapping value names a file that hasn't been seen before;
// callers inject their own bundler-grade resolver.
type Dereferencer interface {
	Dereference(dir string, root any) error
}

// NopDereferencer performs no dereferencing: a freshly loaded file is
// registered as-is, with no further external subtrees discovered within
// it. It is the default when no Dereferencer is configured.
type NopDereferencer struct{}

// Dereference implements Dereferencer.
func (NopDereferencer) Dereference(_ string, _ any) error { return nil }

// Option is a functional option for configuring a Normalize call.
type Option func(*Config)

// Config holds the resolved configuration for a Normalize call.
type Config struct {
	workingDir   string
	excludedDirs map[string]bool
	dereferencer Dereferencer
	logger       Logger
}

// defaultConfig returns the Config used when no options are supplied.
func defaultConfig() *Config {
	return &Config{
		excludedDirs: fileutil.ExcludedDirs(),
		dereferencer: NopDereferencer{},
		logger:       NopLogger{},
	}
}

// WithWorkingDir sets the directory discriminator-mapping file values
// resolve relative to, and the root of the directory-scan fallback.
// Defaults to the process's current working directory.
func WithWorkingDir(dir string) Option {
	return func(c *Config) { c.workingDir = dir }
}

// WithExcludedDirs overrides the directory names skipped by the
// discriminator resolver's directory-scan fallback (default
// .git, node_modules, lib).
func WithExcludedDirs(names ...string) Option {
	return func(c *Config) {
		excluded := make(map[string]bool, len(names))
		for _, n := range names {
			excluded[n] = true
		}
		c.excludedDirs = excluded
	}
}

// WithDereferencer injects the collaborator used to dereference a
// newly-loaded discriminator-mapping file against its own directory.
func WithDereferencer(d Dereferencer) Option {
	return func(c *Config) { c.dereferencer = d }
}

// WithLogger configures the Logger used to report on-demand load
// diagnostics. Only the discriminator-mapping resolver logs.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.logger = l }
}

func newConfig(opts ...Option) *Config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}
