package generate

import (
	"context"

	"dhallgen/internal/dhall"
)

// BundledResolver is the resolver shipped with dhallgen. Besides Resolve it
// can resolve files and report the local files it has read.
type BundledResolver = dhall.Resolver

// Option configures the bundled resolver.
type Option func(*dhall.Config)

// WithBaseDir resolves relative imports in source text against dir.
func WithBaseDir(dir string) Option {
	return func(c *dhall.Config) { c.BaseDir = dir }
}

// WithSourceName names source text in error locations.
func WithSourceName(name string) Option {
	return func(c *dhall.Config) { c.SourceName = name }
}

// WithEnv replaces the process environment for env: imports.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(c *dhall.Config) { c.LookupEnv = lookup }
}

// WithFetch replaces the downloader used for http(s) imports.
func WithFetch(fetch func(ctx context.Context, url string) ([]byte, error)) Option {
	return func(c *dhall.Config) { c.Fetch = dhall.FetchFunc(fetch) }
}

// WithoutRemoteImports rejects every http(s) import.
func WithoutRemoteImports() Option {
	return func(c *dhall.Config) { c.DisableRemote = true }
}

// WithCacheDir sets the scratch directory for remote downloads.
func WithCacheDir(dir string) Option {
	return func(c *dhall.Config) { c.CacheDir = dir }
}

// NewResolver returns the bundled resolver. It caches imports per instance
// and is safe for concurrent use.
func NewResolver(opts ...Option) *BundledResolver {
	var cfg dhall.Config
	for _, opt := range opts {
		opt(&cfg)
	}

	return dhall.New(cfg)
}
