// Package provider defines the collaborator interfaces handlers use to read
// and write records, so features can be tested against in-memory fakes.
package provider

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Lister returns up to pageSize records of one resource.
type Lister[T any] interface {
	List(ctx context.Context, pageSize int) ([]T, error)
}

// Creator persists one record and returns it as stored.
type Creator[T any] interface {
	Create(ctx context.Context, v T) (T, error)
}

// ListerFunc adapts a function to Lister.
type ListerFunc[T any] func(ctx context.Context, pageSize int) ([]T, error)

func (f ListerFunc[T]) List(ctx context.Context, pageSize int) ([]T, error) {
	return f(ctx, pageSize)
}

// CreatorFunc adapts a function to Creator.
type CreatorFunc[T any] func(ctx context.Context, v T) (T, error)

func (f CreatorFunc[T]) Create(ctx context.Context, v T) (T, error) {
	return f(ctx, v)
}

// Fetch runs one list call under its own timeout. Any failure, including a
// timeout, is logged at Warn with the resource name and returns nil, so
// callers treat the resource as "not available" instead of failing the page.
// A successful empty result is returned as a non-nil empty slice.
func Fetch[T any](ctx context.Context, l Lister[T], resource string, pageSize int, timeout time.Duration, log *zap.Logger) []T {
	if l == nil {
		return nil
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	items, err := l.List(ctx, pageSize)
	if err != nil {
		if log != nil {
			fields := []zap.Field{zap.String("resource", resource), zap.Error(err)}
			if errors.Is(err, context.DeadlineExceeded) {
				fields = append(fields, zap.Duration("timeout", timeout))
			}
			log.Warn("list fetch failed", fields...)
		}
		return nil
	}
	if items == nil {
		items = []T{}
	}
	return items
}
