// Package metadata provides the key/value context shared by every plugin
// and step of a single run.
package metadata

import (
	"sort"
	"sync"
)

// Helper is created once per top-level run and passed down to every belt,
// core transform and nested engine of that run.
type Helper struct {
	itemID string

	mu   sync.RWMutex
	data map[string]any
}

func New(itemID string) *Helper {
	return &Helper{
		itemID: itemID,
		data:   make(map[string]any),
	}
}

func (h *Helper) ItemID() string {
	return h.itemID
}

// Add stores value under key, replacing any previous value.
func (h *Helper) Add(key string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data[key] = value
}

func (h *Helper) Get(key string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.data[key]
	return v, ok
}

// GetAll returns a snapshot; later writes are not reflected in it.
func (h *Helper) GetAll() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]any, len(h.data))
	for k, v := range h.data {
		out[k] = v
	}
	return out
}

// Keys returns the stored keys in lexical order.
func (h *Helper) Keys() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	keys := make([]string, 0, len(h.data))
	for k := range h.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (h *Helper) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.data)
}

func (h *Helper) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.data)
}

// Value returns the value stored under key when it is present and of type T.
func Value[T any](h *Helper, key string) (T, bool) {
	var zero T
	v, ok := h.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
