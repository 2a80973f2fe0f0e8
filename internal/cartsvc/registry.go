package cartsvc

import (
	"sync"
	"time"
)

// Registry owns the carts of all live sessions
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*SessionCart
	now   func() time.Time
}

func NewRegistry() *Registry {
	return newRegistryWithClock(time.Now)
}

func newRegistryWithClock(now func() time.Time) *Registry {
	return &Registry{carts: make(map[string]*SessionCart), now: now}
}

// Get returns the cart of a session, creating an empty one on first use
func (r *Registry) Get(sessionID string) *SessionCart {
	r.mu.RLock()
	sc, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if ok {
		return sc
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if sc, ok = r.carts[sessionID]; ok {
		return sc
	}
	sc = newSessionCart(sessionID, r.now)
	r.carts[sessionID] = sc
	return sc
}

// Lookup returns the cart of a session without creating one
func (r *Registry) Lookup(sessionID string) (*SessionCart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sc, ok := r.carts[sessionID]
	return sc, ok
}

// EvictIdle drops carts untouched for longer than maxIdle.
// maxIdle <= 0 disables eviction.
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	deadline := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, sc := range r.carts {
		if sc.Touched().Before(deadline) {
			delete(r.carts, id)
			evicted++
		}
	}
	return evicted
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}
