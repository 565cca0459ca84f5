// Package health aggregates component probes into one service health flag.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers (store, catalog).
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// ServiceHealthChecker folds component checkers into a single cached flag
// that the /health endpoint and startup gate read.
type ServiceHealthChecker struct {
	healthy atomic.Int32
	deps    []HealthChecker
	log     zerolog.Logger
}

// NewServiceHealthChecker starts unhealthy; the flag flips after the first
// evaluation in Start.
func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	return &ServiceHealthChecker{deps: deps, log: log}
}

// IsHealthy returns the cached service health without touching dependencies.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.healthy.Load() == 1 }

// evaluate refreshes the cached flag and returns the names of unhealthy
// components.
func (h *ServiceHealthChecker) evaluate() []string {
	var down []string
	for _, c := range h.deps {
		if !c.IsHealthy() {
			down = append(down, c.Name())
		}
	}
	if len(down) == 0 {
		h.healthy.Store(1)
	} else {
		h.healthy.Store(0)
	}
	return down
}

// Start re-evaluates dependency health on the given interval until the
// context ends. Transitions are logged once, naming the components that are
// down.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prev int32
	logTransition := func(down []string) {
		cur := h.healthy.Load()
		if cur == prev {
			return
		}
		if cur == 1 {
			h.log.Info().Msg("service health: UP")
		} else {
			h.log.Error().Strs("down", down).Msg("service health: DOWN")
		}
		prev = cur
	}

	logTransition(h.evaluate())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logTransition(h.evaluate())
		}
	}
}
