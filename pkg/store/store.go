// Package store implements a read-through local cache for objects held in a
// remote key-prefixed object store.
//
// A Store binds a bucket to a local cache directory. Callers enumerate
// objects under prefixes with List and obtain locally materialized,
// transparently decompressed copies with Open. Materialized copies stay on
// disk until ClearCached removes them; there is no eviction, expiry, or
// cross-process locking.
package store

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/time/rate"

	"github.com/bartfrenk/remote-store/pkg/provider"
)

// Config configures a Store.
type Config struct {
	// Bucket is the remote container name (required). It also namespaces
	// the local cache: cached copies live under CacheDir/Bucket.
	Bucket string

	// CacheDir is the root under which per-bucket cache directories are
	// created. Defaults to the OS temp directory.
	CacheDir string

	// Provider is a pre-built transport. When set it is used as-is and
	// NewProvider is ignored.
	Provider provider.Provider

	// NewProvider builds the transport on first use. The store calls it at
	// most once and reuses the result for its lifetime, so several
	// independently configured stores can coexist in one process.
	NewProvider func(ctx context.Context) (provider.Provider, error)

	// Sink receives one short marker per network round trip (page fetch,
	// download attempt). Purely cosmetic; nil discards markers.
	Sink io.Writer

	// PageSize is the number of entries requested per listing page.
	// Zero uses the provider default.
	PageSize int

	// RateLimit caps provider requests per second. Zero means unlimited.
	RateLimit float64
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("store config: bucket is required")
	}
	if c.Provider == nil && c.NewProvider == nil {
		return fmt.Errorf("store config: either Provider or NewProvider is required")
	}
	return nil
}

// Store is a handle to one bucket and its local cache directory.
//
// A Store is safe for sequential reuse. It makes no thread-safety claim for
// concurrent calls, and two stores (or processes) sharing a cache directory
// are not coordinated.
type Store struct {
	bucket    string
	cacheRoot string
	sink      io.Writer
	pageSize  int
	limiter   *rate.Limiter

	newProvider func(ctx context.Context) (provider.Provider, error)
	prov        provider.Provider
}

// New creates a Store from the given configuration.
func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = os.TempDir()
	}

	sink := cfg.Sink
	if sink == nil {
		sink = io.Discard
	}

	s := &Store{
		bucket:      cfg.Bucket,
		cacheRoot:   CachePath(cacheDir, cfg.Bucket),
		sink:        sink,
		pageSize:    cfg.PageSize,
		newProvider: cfg.NewProvider,
		prov:        cfg.Provider,
	}

	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return s, nil
}

// Bucket returns the remote container name.
func (s *Store) Bucket() string {
	return s.bucket
}

// CacheRoot returns the local directory holding this store's cached copies.
func (s *Store) CacheRoot() string {
	return s.cacheRoot
}

// Close releases the underlying transport, if one was created.
// Calling Close is optional; an unclosed store is torn down at process exit.
func (s *Store) Close() error {
	if s.prov == nil {
		return nil
	}
	return s.prov.Close()
}

// provider returns the transport, creating it on first use.
func (s *Store) provider(ctx context.Context) (provider.Provider, error) {
	if s.prov != nil {
		return s.prov, nil
	}
	p, err := s.newProvider(ctx)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	s.prov = p
	return p, nil
}

// say writes a terse progress marker to the sink. Markers are never
// consulted for control flow; write errors are ignored.
func (s *Store) say(marker string) {
	_, _ = io.WriteString(s.sink, marker)
}

// waitForRateLimit blocks until the rate limiter allows a request.
// Returns immediately if rate limiting is disabled.
func (s *Store) waitForRateLimit(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}
