package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/health"
)

// StoreHealthChecker probes database responsiveness on a fixed interval and
// caches the result for non-blocking reads.
type StoreHealthChecker struct {
	store        Store
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewStoreHealthChecker starts unhealthy until the first probe succeeds.
func NewStoreHealthChecker(store Store, log zerolog.Logger, probeTimeout time.Duration) *StoreHealthChecker {
	return &StoreHealthChecker{store: store, log: log, probeTimeout: probeTimeout}
}

func (hc *StoreHealthChecker) Name() string { return "store" }

// IsHealthy returns the cached probe result.
func (hc *StoreHealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

// Start probes immediately and then on every tick until the context ends.
func (hc *StoreHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hc.probeOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hc.probeOnce(ctx)
		}
	}
}

func (hc *StoreHealthChecker) probeOnce(ctx context.Context) {
	to := hc.probeTimeout
	if to <= 0 {
		to = 2 * time.Second
	}
	probeCtx, cancel := context.WithTimeout(ctx, to)
	defer cancel()

	err := hc.probe(probeCtx)
	if err != nil {
		hc.healthy.Store(0)
		hc.log.Error().Stack().
			Str("checker", hc.Name()).
			Err(err).
			Msg("store health check failed")
		return
	}
	hc.healthy.Store(1)
}

// probe prefers a driver-level ping when the backend provides one; otherwise
// a cheap count proves the database answers queries.
func (hc *StoreHealthChecker) probe(ctx context.Context) error {
	if p, ok := hc.store.(health.HealthPinger); ok {
		return p.HealthPing(ctx)
	}
	_, err := hc.store.Properties().Count(ctx)
	return err
}
