// Package memo caches dashboard summaries keyed by the content hash of the
// snapshot they were derived from.
//
// The cache is a pure-function memo: a key fully determines its value, so
// entries never need invalidation, only eviction. Stores can be stacked
// (in-process LRU in front of Redis) with Chain.
package memo

import (
	"context"
	"strconv"

	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "schooldesk:summary:v1:"

// Store is a key/value backend for summaries. Get reports a miss on any
// failure; Put is best effort.
type Store interface {
	Get(ctx context.Context, key string) (metrics.Summary, bool)
	Put(ctx context.Context, key string, s metrics.Summary)
}

// Memo computes summaries at most once per distinct snapshot.
type Memo struct {
	store Store
	agg   metrics.Aggregator
	group singleflight.Group
	log   *zap.Logger
}

// New returns a Memo backed by store. A nil store disables caching.
func New(store Store, agg metrics.Aggregator, logger *zap.Logger) *Memo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memo{store: store, agg: agg, log: logger}
}

// Key is the cache key for snap under this Memo's aggregator settings.
func (m *Memo) Key(snap metrics.Snapshot) string {
	return keyPrefix + strconv.Itoa(m.agg.NominalCapacity) + ":" + snap.Key()
}

// Summary returns the summary for snap, computing it on a miss.
// Concurrent misses for the same key share one computation.
//
// The returned slices may be shared with other callers and must not be
// modified.
func (m *Memo) Summary(ctx context.Context, snap metrics.Snapshot) metrics.Summary {
	if m.store == nil {
		return m.agg.Aggregate(snap)
	}

	key := m.Key(snap)
	if s, ok := m.store.Get(ctx, key); ok {
		m.log.Debug("summary cache hit", zap.String("key", key))
		return s
	}

	v, _, shared := m.group.Do(key, func() (any, error) {
		s := m.agg.Aggregate(snap)
		m.store.Put(ctx, key, s)
		return s, nil
	})
	m.log.Debug("summary cache miss", zap.String("key", key), zap.Bool("shared", shared))
	return v.(metrics.Summary)
}
