package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/schooldesk/internal/app/system/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	l := ratelimit.New(2, time.Minute)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("expected first two hits to be allowed")
	}
	if l.Allow("a") {
		t.Error("expected third hit to be blocked")
	}
	if !l.Allow("b") {
		t.Error("expected other key to be independent")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining(a) = %d, want 0", got)
	}
	if got := l.Remaining("c"); got != 2 {
		t.Errorf("Remaining(c) = %d, want 2", got)
	}

	l.Reset("a")
	if !l.Allow("a") {
		t.Error("expected hit after Reset to be allowed")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := ratelimit.New(1, 50*time.Millisecond)
	if !l.Allow("k") {
		t.Fatal("expected first hit to be allowed")
	}
	if l.Allow("k") {
		t.Fatal("expected second hit to be blocked")
	}
	time.Sleep(120 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("expected hit after window to be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2"}, "1.2.3.4:5", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "1.2.3.4:5", "10.0.0.9"},
		{"remote with port", nil, "1.2.3.4:5678", "1.2.3.4"},
		{"remote without port", nil, "1.2.3.4", "1.2.3.4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/login", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			if got := ratelimit.ClientIP(r); got != tc.want {
				t.Errorf("ClientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginLimiter(t *testing.T) {
	ll := ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)
	r := httptest.NewRequest("POST", "/login", nil)

	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "Ada@Example.com"); !ok {
			t.Fatalf("attempt %d: expected allowed", i+1)
		}
	}
	ok, reason := ll.Check(r, " ada@example.com ")
	if ok {
		t.Fatal("expected email limit to block (case and space insensitive)")
	}
	if reason != ratelimit.MsgTooManyForEmail {
		t.Errorf("reason = %q", reason)
	}

	ll.ResetEmail("ADA@example.com")
	if ok, _ := ll.Check(r, "ada@example.com"); !ok {
		t.Error("expected allowed after ResetEmail")
	}
}

func TestLoginLimiter_IPFirst(t *testing.T) {
	ll := ratelimit.NewLoginLimiterWithConfig(1, time.Minute, 10, time.Minute)
	r := httptest.NewRequest("POST", "/login", nil)

	if ok, _ := ll.Check(r, "a@example.com"); !ok {
		t.Fatal("expected first attempt allowed")
	}
	ok, reason := ll.Check(r, "b@example.com")
	if ok || reason != ratelimit.MsgTooManyFromIP {
		t.Errorf("got (%v, %q), want IP block", ok, reason)
	}
}
