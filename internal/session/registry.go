package session

import (
	"sync"
	"time"
)

// Registry maps session ids to their caches. Sessions idle longer than the
// registry's idle limit are dropped.
type Registry struct {
	mu        sync.Mutex
	caches    map[string]*entry
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type entry struct {
	cache    *Cache
	lastUsed time.Time
}

// NewRegistry creates an empty registry that forgets sessions unused for idle.
func NewRegistry(idle time.Duration) *Registry {
	return &Registry{
		caches: make(map[string]*entry),
		idle:   idle,
		now:    time.Now,
	}
}

// Get returns the cache for id, creating it on first use.
func (r *Registry) Get(id string) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	e, ok := r.caches[id]
	if !ok {
		e = &entry{cache: NewCache()}
		r.caches[id] = e
	}
	e.lastUsed = now

	return e.cache
}

// Len reports how many sessions are tracked.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.caches)
}

// sweep drops idle sessions. It scans at most once per sweepInterval.
func (r *Registry) sweep(now time.Time) {
	if r.idle <= 0 || now.Sub(r.lastSweep) < r.sweepInterval() {
		return
	}
	r.lastSweep = now

	for id, e := range r.caches {
		if now.Sub(e.lastUsed) > r.idle {
			delete(r.caches, id)
		}
	}
}

func (r *Registry) sweepInterval() time.Duration {
	return min(r.idle, time.Minute)
}
