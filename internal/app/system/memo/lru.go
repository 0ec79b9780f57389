package memo

import (
	"context"
	"time"

	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultLRUSize is used when NewLRU is given a non-positive size.
const DefaultLRUSize = 64

// LRU is an in-process, size-bounded store with per-entry TTL.
type LRU struct {
	c *expirable.LRU[string, metrics.Summary]
}

// NewLRU creates an LRU store. A zero ttl keeps entries until evicted.
func NewLRU(size int, ttl time.Duration) *LRU {
	if size <= 0 {
		size = DefaultLRUSize
	}
	return &LRU{c: expirable.NewLRU[string, metrics.Summary](size, nil, ttl)}
}

func (l *LRU) Get(_ context.Context, key string) (metrics.Summary, bool) {
	return l.c.Get(key)
}

func (l *LRU) Put(_ context.Context, key string, s metrics.Summary) {
	l.c.Add(key, s)
}

// Len reports the number of live entries.
func (l *LRU) Len() int {
	return l.c.Len()
}
