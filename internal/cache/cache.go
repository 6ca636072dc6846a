// Package cache provides the per-cycle token data cache.
// It memoizes connector results keyed by (address, record kind) so that
// analysis steps sharing a provider call never duplicate work within a cycle.
package cache

import "sync"

// Kind identifies the record type stored for an address. Raw provider-shaped
// records and their derived forms use distinct kinds, so a later step reusing
// the same provider call does not need to re-derive anything.
type Kind string

const (
	KindOverview     Kind = "overview"
	KindHolders      Kind = "holders"
	KindOHLCV        Kind = "ohlcv"
	KindVolumeTrend  Kind = "volume_trend" // derived from KindOHLCV
	KindTransactions Kind = "transactions"
	KindSecurity     Kind = "security"
	KindDexStats     Kind = "dex_stats"
	KindVLR          Kind = "vlr" // derived from KindOverview + KindDexStats
)

type key struct {
	address string
	kind    Kind
}

// Stats describes cache occupancy.
type Stats struct {
	EntryCount    int
	BytesEstimate int64
}

// entryOverhead is a rough per-entry size guess for Stats; the cache never
// inspects stored values.
const entryOverhead = 256

// Cache is a concurrent-safe per-cycle memoization store. Writes to the same
// key are resolved first-writer-wins: a duplicate concurrent fetch is
// discarded, never merged, and never an error. Created empty at cycle start
// and discarded at cycle end.
type Cache struct {
	mu      sync.RWMutex
	entries map[key]any
	bytes   int64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[key]any)}
}

// Get returns the stored value for (address, kind). Repeated calls for the
// same key return the identical value within a cycle.
func (c *Cache) Get(address string, kind Kind) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key{address, kind}]
	return v, ok
}

// Set stores a value for (address, kind). If the key already holds a value
// the new one is discarded; the first successful write wins.
func (c *Cache) Set(address string, kind Kind, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{address, kind}
	if _, exists := c.entries[k]; exists {
		return
	}
	c.entries[k] = value
	c.bytes += int64(len(address)+len(kind)) + entryOverhead
}

// ClearAll discards every entry.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[key]any)
	c.bytes = 0
}

// Stats returns the entry count and a rough size estimate.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{EntryCount: len(c.entries), BytesEstimate: c.bytes}
}
