// Package realtime drives the live counters: the continuously-ticking
// savings and smoke-free figures shown on the dashboard. It polls the
// engine on a short interval and caches the latest snapshot behind a
// read lock.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/vapetrack/vapetrack/internal/app/tracker"
	"github.com/vapetrack/vapetrack/internal/domain"
	"github.com/vapetrack/vapetrack/internal/infra/metrics"
)

// DefaultInterval is the refresh cadence of the live counters.
const DefaultInterval = 250 * time.Millisecond

// Snapshot is one tick of the live counters.
type Snapshot struct {
	NetSavings        float64       `json:"net_savings"`
	CigarettesAvoided float64       `json:"cigarettes_avoided"`
	TimeSinceLastPuff time.Duration `json:"time_since_last_puff"`
	At                time.Time     `json:"at"`
}

// Ticker recomputes the live counters on a fixed interval.
type Ticker struct {
	mu       sync.RWMutex
	latest   Snapshot
	engine   *tracker.Engine
	interval time.Duration
}

// NewTicker creates a live-counter ticker over the engine. A
// non-positive interval falls back to DefaultInterval.
func NewTicker(engine *tracker.Engine, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{engine: engine, interval: interval}
}

// Run starts the refresh loop. Call in a goroutine; returns when ctx
// is cancelled.
func (t *Ticker) Run(ctx context.Context) {
	// Tick immediately on start
	t.tick(time.Now())

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.tick(now)
		}
	}
}

func (t *Ticker) tick(now time.Time) {
	stats, err := t.engine.Snapshot(now)
	if err != nil {
		return // Keep the previous snapshot; next tick retries
	}
	t.mu.Lock()
	t.latest = fromStats(stats, now)
	t.mu.Unlock()

	metrics.NetSavings.Set(stats.NetSavings)
	metrics.XPBalance.Set(float64(stats.XP))
}

// Latest returns the most recent snapshot. Zero before the first tick.
func (t *Ticker) Latest() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest
}

// Compute produces a single live snapshot on demand, bypassing the
// loop. Used by the one-shot CLI views.
func (t *Ticker) Compute(now time.Time) (Snapshot, error) {
	stats, err := t.engine.Snapshot(now)
	if err != nil {
		return Snapshot{}, err
	}
	return fromStats(stats, now), nil
}

func fromStats(s domain.DisplayStats, now time.Time) Snapshot {
	return Snapshot{
		NetSavings:        s.NetSavings,
		CigarettesAvoided: s.CigarettesAvoided,
		TimeSinceLastPuff: s.TimeSinceLastPuff,
		At:                now,
	}
}
