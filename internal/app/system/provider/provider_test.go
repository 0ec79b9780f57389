package provider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/schooldesk/internal/app/system/provider"
	"go.uber.org/zap"
)

func TestFetch_Success(t *testing.T) {
	var gotSize int
	l := provider.ListerFunc[string](func(_ context.Context, pageSize int) ([]string, error) {
		gotSize = pageSize
		return []string{"a", "b"}, nil
	})

	got := provider.Fetch[string](context.Background(), l, "things", 100, time.Second, zap.NewNop())
	if len(got) != 2 {
		t.Errorf("len: got %d, want 2", len(got))
	}
	if gotSize != 100 {
		t.Errorf("pageSize: got %d, want 100", gotSize)
	}
}

func TestFetch_ErrorYieldsNil(t *testing.T) {
	l := provider.ListerFunc[string](func(context.Context, int) ([]string, error) {
		return []string{"partial"}, errors.New("boom")
	})

	if got := provider.Fetch[string](context.Background(), l, "things", 10, time.Second, zap.NewNop()); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestFetch_TimeoutYieldsNil(t *testing.T) {
	l := provider.ListerFunc[string](func(ctx context.Context, _ int) ([]string, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	start := time.Now()
	got := provider.Fetch[string](context.Background(), l, "slow", 10, 20*time.Millisecond, zap.NewNop())
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fetch blocked for %v", elapsed)
	}
}

func TestFetch_EmptyIsNonNil(t *testing.T) {
	l := provider.ListerFunc[int](func(context.Context, int) ([]int, error) {
		return nil, nil
	})

	got := provider.Fetch[int](context.Background(), l, "empty", 10, 0, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestFetch_NilLister(t *testing.T) {
	if got := provider.Fetch[int](context.Background(), nil, "none", 10, 0, zap.NewNop()); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
