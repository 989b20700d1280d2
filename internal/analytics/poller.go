package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Snapshot is the dashboard view refreshed by the Poller.
type Snapshot struct {
	Summary     Summary      `json:"summary"`
	ByRegion    []GroupStat  `json:"by_region"`
	ByRole      []GroupStat  `json:"by_role"`
	Trend       []TrendPoint `json:"trend"`
	Growth      Growth       `json:"growth"`
	RefreshedAt time.Time    `json:"refreshed_at"`
}

// Poller periodically recomputes a Snapshot from the data store. The admin
// console reads the latest snapshot instead of hitting the store on every
// page refresh; staleness up to one interval is accepted.
type Poller struct {
	compute  func(ctx context.Context) (Snapshot, error)
	interval time.Duration

	mu     sync.RWMutex
	latest Snapshot
	ok     bool
}

func NewPoller(compute func(ctx context.Context) (Snapshot, error), interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Poller{
		compute:  compute,
		interval: interval,
	}
}

// Start refreshes immediately, then on every tick until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	p.refresh(ctx)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.refresh(ctx)
			}
		}
	}()
}

func (p *Poller) refresh(ctx context.Context) {
	snap, err := p.compute(ctx)
	if err != nil {
		// Best-effort: keep serving the previous snapshot.
		zap.L().Warn("analytics refresh failed", zap.Error(err))
		return
	}
	snap.RefreshedAt = time.Now()

	p.mu.Lock()
	p.latest = snap
	p.ok = true
	p.mu.Unlock()
}

// Latest returns the most recent snapshot, and false when no refresh has
// succeeded yet.
func (p *Poller) Latest() (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.latest, p.ok
}
