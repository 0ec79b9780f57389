// Package ratelimit throttles sign-in attempts per client IP and per email.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// maxKeys bounds memory; the least recently seen key is dropped first.
const maxKeys = 10000

// Limiter allows at most limit hits per key in a fixed window that starts
// at the key's first hit. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows *expirable.LRU[string, *window]
	limit   int
}

type window struct {
	count int
}

// New returns a Limiter allowing limit hits per key every d.
func New(limit int, d time.Duration) *Limiter {
	return &Limiter{
		windows: expirable.NewLRU[string, *window](maxKeys, nil, d),
		limit:   limit,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows.Get(key)
	if !ok {
		// Expiry is fixed when the entry is added.
		l.windows.Add(key, &window{count: 1})
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many hits key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows.Peek(key)
	if !ok {
		return l.limit
	}
	if n := l.limit - w.count; n > 0 {
		return n
	}
	return 0
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows.Remove(key)
}

// ClientIP returns the first X-Forwarded-For entry, then X-Real-IP, then
// the host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

const (
	MsgTooManyFromIP   = "Too many sign-in attempts. Please wait a minute before trying again."
	MsgTooManyForEmail = "Too many sign-in attempts for this account. Please wait a few minutes."
	DefaultIPLimit     = 10
	DefaultIPWindow    = time.Minute
	DefaultEmailLimit  = 5
	DefaultEmailWindow = 5 * time.Minute
)

// LoginLimiter combines a per-IP and a per-email limit.
type LoginLimiter struct {
	ip    *Limiter
	email *Limiter
}

// NewLoginLimiter uses the Default* limits.
func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(DefaultIPLimit, DefaultIPWindow, DefaultEmailLimit, DefaultEmailWindow)
}

func NewLoginLimiterWithConfig(ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *LoginLimiter {
	return &LoginLimiter{
		ip:    New(ipLimit, ipWindow),
		email: New(emailLimit, emailWindow),
	}
}

// Check records an attempt and returns a user-facing reason when it is
// over either limit. The IP limit is checked first; a blocked IP does not
// count against the email.
func (ll *LoginLimiter) Check(r *http.Request, email string) (bool, string) {
	if !ll.ip.Allow(ClientIP(r)) {
		return false, MsgTooManyFromIP
	}
	if key := emailKey(email); key != "" && !ll.email.Allow(key) {
		return false, MsgTooManyForEmail
	}
	return true, ""
}

// ResetEmail clears the email counter after a successful sign-in.
func (ll *LoginLimiter) ResetEmail(email string) {
	if key := emailKey(email); key != "" {
		ll.email.Reset(key)
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
