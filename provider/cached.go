package provider

import (
	"context"
	"fmt"

	"github.com/ayushbridge/conceptmapper/cache"
	"github.com/ayushbridge/conceptmapper/service"
	"github.com/ayushbridge/conceptmapper/similarity"
)

// Cached wraps a provider with an in-process LRU cache. Lookup results
// are cached by (system, normalized query, limit); errors are never
// cached, so a recovered provider is retried on the next call.
type Cached struct {
	inner service.CandidateProvider
	cache *cache.Cache[string, []service.CandidateEntry]
}

// NewCached creates a caching wrapper with the given capacity.
func NewCached(inner service.CandidateProvider, capacity int) *Cached {
	return &Cached{
		inner: inner,
		cache: cache.New[string, []service.CandidateEntry](capacity),
	}
}

// Lookup implements service.CandidateProvider with caching.
func (c *Cached) Lookup(ctx context.Context, system, query string, limit int) ([]service.CandidateEntry, error) {
	key := lookupKey(system, query, limit)
	if entries, ok := c.cache.Get(key); ok {
		return entries, nil
	}

	entries, err := c.inner.Lookup(ctx, system, query, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, entries)
	return entries, nil
}

// Stats returns the underlying cache counters.
func (c *Cached) Stats() cache.Stats {
	return c.cache.Stats()
}

func lookupKey(system, query string, limit int) string {
	return fmt.Sprintf("%s|%d|%s", system, limit, similarity.Normalize(query))
}

// Verify interface compliance.
var _ service.CandidateProvider = (*Cached)(nil)
