package memo

import (
	"context"

	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
)

type chain []Store

// Chain layers stores, fastest first. A hit in a later store is copied
// back into the earlier ones.
func Chain(stores ...Store) Store {
	out := make(chain, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (c chain) Get(ctx context.Context, key string) (metrics.Summary, bool) {
	for i, s := range c {
		if v, ok := s.Get(ctx, key); ok {
			for j := 0; j < i; j++ {
				c[j].Put(ctx, key, v)
			}
			return v, true
		}
	}
	return metrics.Summary{}, false
}

func (c chain) Put(ctx context.Context, key string, v metrics.Summary) {
	for _, s := range c {
		s.Put(ctx, key, v)
	}
}
