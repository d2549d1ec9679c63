package plugin

import (
	"fmt"
	"sync"
)

// Registry is the ordered list of plugins registered on one engine.
// Registration order is execution order.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("%w: %q", ErrDuplicate, p.Name())
		}
	}
	r.plugins = append(r.plugins, p)
	return nil
}

// Remove drops the plugin called name and reports whether it was present.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.plugins[:0:0]
	for _, p := range r.plugins {
		if p.Name() != name {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(r.plugins)
	r.plugins = kept
	return removed
}

// Snapshot returns the registered plugins followed by extra, without
// touching the registry.
func (r *Registry) Snapshot(extra ...Plugin) []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, 0, len(r.plugins)+len(extra))
	out = append(out, r.plugins...)
	for _, p := range extra {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for _, p := range r.plugins {
		names = append(names, p.Name())
	}
	return names
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
