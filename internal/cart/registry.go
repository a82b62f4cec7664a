package cart

import "sync"

// Registry keeps one cart per cashier session.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Manager
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Manager)}
}

// Get returns the session cart, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.carts[sessionID]
	if !ok {
		m = NewManager()
		r.carts[sessionID] = m
	}
	return m
}

// Drop forgets a session cart, e.g. on logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
}
