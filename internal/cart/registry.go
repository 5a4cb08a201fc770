package cart

import "sync"

// Registry hands out one cart per session key. There is no process-wide
// cart; every session gets its own explicitly constructed store.
type Registry struct {
	mu     sync.Mutex
	carts  map[string]*Cart
	placer Placer
}

func NewRegistry(placer Placer) *Registry {
	return &Registry{carts: make(map[string]*Cart), placer: placer}
}

// Get returns the cart for key, creating it on first use.
func (r *Registry) Get(key string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[key]
	if !ok {
		c = New(r.placer)
		r.carts[key] = c
	}
	return c
}

// Drop discards the cart for key, if any. Called on logout.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, key)
}
