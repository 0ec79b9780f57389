package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	defer Reset()

	Configure(Config{Fetch: 750 * time.Millisecond})

	if got := Fetch(); got != 750*time.Millisecond {
		t.Errorf("Fetch: got %v, want 750ms", got)
	}
	if got := Short(); got != DefaultShort {
		t.Errorf("Short: got %v, want %v", got, DefaultShort)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	defer Reset()
	t.Setenv("SCHOOLDESK_TIMEOUT_FETCH", "3s")
	t.Setenv("SCHOOLDESK_TIMEOUT_LONG", "not-a-duration")
	t.Setenv("SCHOOLDESK_TIMEOUT_PING", "-1s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("configured: got %d, want 1", n)
	}
	cur := Current()
	if cur.Fetch != 3*time.Second {
		t.Errorf("Fetch: got %v, want 3s", cur.Fetch)
	}
	if cur.Long != DefaultLong {
		t.Errorf("Long: got %v, want %v", cur.Long, DefaultLong)
	}
	if cur.Ping != DefaultPing {
		t.Errorf("Ping: got %v, want %v", cur.Ping, DefaultPing)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("got %v, want DeadlineExceeded", ctx.Err())
	}
}
