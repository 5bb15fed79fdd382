package page

import (
	"sync"
	"time"
)

type Registry struct {
	mu    sync.RWMutex
	pages map[string]*Page
}

func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]*Page)}
}

func (r *Registry) Register(p *Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[p.ID] = p
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	p, ok := r.pages[id]
	delete(r.pages, id)
	r.mu.Unlock()

	if ok {
		p.Close()
	}
}

func (r *Registry) Get(id string) *Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pages[id]
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}

// Sweep closes pages that have had no connection for longer than ttl and
// returns how many were removed.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	expired := make([]*Page, 0)
	for id, p := range r.pages {
		lastSeen, idle := p.idleSince()
		if idle && lastSeen.Before(cutoff) {
			expired = append(expired, p)
			delete(r.pages, id)
		}
	}
	r.mu.Unlock()

	for _, p := range expired {
		p.Close()
	}
	return len(expired)
}
