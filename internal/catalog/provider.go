// Package catalog maintains the in-memory property snapshot that the scoring
// and filtering pipeline reads. Reads are served from a cached snapshot;
// writes invalidate it through the event bus, and a TTL bounds staleness when
// events are missed.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/events"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/match"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

// DefaultTTL bounds how stale a snapshot may get before the next read
// reloads it from the store.
const DefaultTTL = 30 * time.Second

// Provider serves match.Catalog snapshots backed by the store.
type Provider struct {
	store store.Store
	ttl   time.Duration

	mu       sync.RWMutex
	snapshot *match.Catalog
	loadedAt time.Time
}

// NewProvider creates a provider with the given snapshot TTL. A non-positive
// TTL falls back to DefaultTTL.
func NewProvider(s store.Store, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{store: s, ttl: ttl}
}

// Snapshot returns the current catalog, reloading from the store when the
// cache is empty or past its TTL. Concurrent callers may race to reload; the
// last loader wins, which is harmless because every load reads the same
// table.
func (p *Provider) Snapshot(ctx context.Context) (*match.Catalog, error) {
	p.mu.RLock()
	snap, loaded := p.snapshot, p.loadedAt
	p.mu.RUnlock()
	if snap != nil && time.Since(loaded) < p.ttl {
		return snap, nil
	}
	return p.reload(ctx)
}

func (p *Provider) reload(ctx context.Context) (*match.Catalog, error) {
	props, err := p.store.Properties().List(ctx)
	if err != nil {
		p.mu.RLock()
		snap := p.snapshot
		p.mu.RUnlock()
		if snap != nil {
			// Serving a stale snapshot beats failing every read while the
			// database hiccups.
			log.Warn().Err(err).Msg("catalog reload failed, serving stale snapshot")
			return snap, nil
		}
		return nil, err
	}
	cat := match.NewCatalog(props)
	p.mu.Lock()
	p.snapshot = cat
	p.loadedAt = time.Now()
	p.mu.Unlock()
	return cat, nil
}

// Invalidate drops the cached snapshot so the next read reloads.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	p.snapshot = nil
	p.loadedAt = time.Time{}
	p.mu.Unlock()
}

// Watch invalidates the snapshot whenever a property change event arrives.
// It blocks until ctx is done and is meant to run on its own goroutine.
func (p *Provider) Watch(ctx context.Context, bus *events.Bus) {
	if bus == nil {
		return
	}
	ch := bus.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			log.Debug().
				Str("kind", string(ev.Kind)).
				Int64("propertyId", ev.PropertyID).
				Msg("catalog snapshot invalidated")
			p.Invalidate()
		}
	}
}
