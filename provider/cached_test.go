package provider

import (
	"context"
	"errors"
	"testing"

	cm "github.com/ayushbridge/conceptmapper"
	"github.com/ayushbridge/conceptmapper/service"
)

// countingProvider records its call count and serves canned responses.
type countingProvider struct {
	calls   int
	entries []service.CandidateEntry
	err     error
}

func (p *countingProvider) Lookup(ctx context.Context, system, query string, limit int) ([]service.CandidateEntry, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.entries, nil
}

func TestCachedLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("repeat lookups hit the cache", func(t *testing.T) {
		inner := &countingProvider{entries: []service.CandidateEntry{
			{System: cm.SystemICD11TM2, Code: "TM2.01", Display: "Constitutional Type"},
		}}
		c := NewCached(inner, 8)

		for i := 0; i < 3; i++ {
			got, err := c.Lookup(ctx, cm.SystemICD11TM2, "constitutional", 10)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if len(got) != 1 || got[0].Code != "TM2.01" {
				t.Fatalf("Lookup() = %v", got)
			}
		}

		if inner.calls != 1 {
			t.Errorf("inner calls = %d; want 1", inner.calls)
		}
		if stats := c.Stats(); stats.Hits != 2 || stats.Misses != 1 {
			t.Errorf("Stats() = %+v; want hits=2 misses=1", stats)
		}
	})

	t.Run("key includes normalized query and limit", func(t *testing.T) {
		inner := &countingProvider{}
		c := NewCached(inner, 8)

		c.Lookup(ctx, cm.SystemICD11TM2, "Constitutional  Type", 10)
		c.Lookup(ctx, cm.SystemICD11TM2, "constitutional type", 10) // same key
		c.Lookup(ctx, cm.SystemICD11TM2, "constitutional type", 5)  // different limit

		if inner.calls != 2 {
			t.Errorf("inner calls = %d; want 2", inner.calls)
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := &countingProvider{err: errors.New("unreachable")}
		c := NewCached(inner, 8)

		for i := 0; i < 2; i++ {
			if _, err := c.Lookup(ctx, cm.SystemICD11TM2, "constitutional", 10); err == nil {
				t.Fatal("expected error")
			}
		}
		if inner.calls != 2 {
			t.Errorf("inner calls = %d; want 2 (errors must not cache)", inner.calls)
		}

		// Once the provider recovers, results flow and cache again.
		inner.err = nil
		inner.entries = []service.CandidateEntry{{System: cm.SystemICD11TM2, Code: "TM2.01", Display: "x"}}
		c.Lookup(ctx, cm.SystemICD11TM2, "constitutional", 10)
		c.Lookup(ctx, cm.SystemICD11TM2, "constitutional", 10)
		if inner.calls != 3 {
			t.Errorf("inner calls = %d; want 3", inner.calls)
		}
	})

	t.Run("empty results are cached", func(t *testing.T) {
		inner := &countingProvider{}
		c := NewCached(inner, 8)

		c.Lookup(ctx, cm.SystemICD11TM2, "nothing matches this", 10)
		c.Lookup(ctx, cm.SystemICD11TM2, "nothing matches this", 10)
		if inner.calls != 1 {
			t.Errorf("inner calls = %d; want 1 (empty result should cache)", inner.calls)
		}
	})
}
