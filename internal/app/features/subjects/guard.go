// internal/app/features/subjects/guard.go
package subjects

import "sync"

// Guard tracks in-flight submissions. A key is held from the moment a
// create call is issued until it settles.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewGuard returns an empty Guard.
func NewGuard() *Guard {
	return &Guard{inFlight: map[string]struct{}{}}
}

// guardKey scopes a form token to the user who submitted it.
func guardKey(userID, token string) string {
	return userID + ":" + token
}

// Acquire claims key. It returns false if key is already held.
func (g *Guard) Acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

// Release frees key.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
}
