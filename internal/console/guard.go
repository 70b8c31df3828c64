package console

import (
	"sync"
	"time"
)

// Guard rejects duplicate submissions. Each rendered form carries a token;
// a token may be in flight only once, and a token whose submission
// succeeded is refused until its TTL expires. A failed submission releases
// its token so the same form can be retried.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
	done     map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewGuard creates a Guard remembering completed tokens for ttl.
func NewGuard(ttl time.Duration) *Guard {
	return &Guard{
		inflight: make(map[string]struct{}),
		done:     make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Begin claims key. It returns false when key is in flight or completed.
// An empty key is never guarded.
func (g *Guard) Begin(key string) bool {
	if key == "" {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sweep()

	if _, busy := g.inflight[key]; busy {
		return false
	}
	if _, used := g.done[key]; used {
		return false
	}
	g.inflight[key] = struct{}{}
	return true
}

// Finish ends the submission of key. A successful submission is
// remembered; a failed one is forgotten so it can be retried.
func (g *Guard) Finish(key string, success bool) {
	if key == "" {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inflight, key)
	if success {
		g.done[key] = g.now().Add(g.ttl)
	}
}

// sweep drops expired completed tokens. Callers hold g.mu.
func (g *Guard) sweep() {
	now := g.now()
	for k, exp := range g.done {
		if now.After(exp) {
			delete(g.done, k)
		}
	}
}
