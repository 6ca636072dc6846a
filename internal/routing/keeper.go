// Package routing maintains the latest route availability snapshot.
// The scoring engine only ever consumes the snapshot handed to it; refresh
// cadence is the caller's concern.
package routing

import (
	"context"
	"sync"
	"time"

	"token-radar/internal/connectors"
	"token-radar/internal/domain"
)

// DefaultRefreshInterval is how often the caller should refresh the matrix.
const DefaultRefreshInterval = 30 * time.Minute

// Keeper holds the latest RoutingSnapshot behind a read lock. A stale
// snapshot is served rather than blocking readers on a refresh.
type Keeper struct {
	source   connectors.RoutingSource
	interval time.Duration

	mu   sync.RWMutex
	snap *domain.RoutingSnapshot
}

// NewKeeper creates a keeper over the given routing source. Interval <= 0
// uses the default.
func NewKeeper(source connectors.RoutingSource, interval time.Duration) *Keeper {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Keeper{source: source, interval: interval}
}

// Latest returns the most recent snapshot, or nil before the first refresh.
func (k *Keeper) Latest() *domain.RoutingSnapshot {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.snap
}

// Stale reports whether the snapshot is missing or older than the refresh
// interval.
func (k *Keeper) Stale(now time.Time) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.snap == nil || now.Sub(k.snap.TakenAt) >= k.interval
}

// Refresh fetches a new snapshot for the given addresses. On failure the
// previous snapshot stays in place.
func (k *Keeper) Refresh(ctx context.Context, addresses []string) error {
	snap, err := k.source.FetchRoutingSnapshot(ctx, addresses)
	if err != nil {
		return err
	}

	k.mu.Lock()
	k.snap = snap
	k.mu.Unlock()
	return nil
}
