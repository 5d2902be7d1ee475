// Package observer provides the observer registry and the built-in DOM
// observers. Observers translate raw DOM activity (mutations, focus moves,
// IME composition) into structured notifications, and are disabled around
// render passes so that renderer-driven mutations are never mistaken for
// user edits.
package observer

import (
	"sync"

	"golang.org/x/net/html"
)

// Type identifies an observer kind. Registration is keyed by Type, so
// adding the same kind twice yields the cached instance.
type Type int

const (
	TypeMutation Type = iota
	TypeFocus
	TypeComposition
)

// String returns a human-readable name for the observer type.
func (t Type) String() string {
	switch t {
	case TypeMutation:
		return "mutation"
	case TypeFocus:
		return "focus"
	case TypeComposition:
		return "composition"
	default:
		return "unknown"
	}
}

// Observer is the capability every registered observer exposes. Observe
// attaches the observer to a DOM root; Enable and Disable toggle whether
// its change-detection side effects fire. Re-enabling resumes observation
// without re-attaching.
type Observer interface {
	Observe(root *html.Node, rootName string)
	Enable()
	Disable()
}

// Detacher is implemented by observers that hold per-root resources which
// must be released when the owning document is destroyed.
type Detacher interface {
	Detach()
}

// Constructor builds a new observer instance. It is invoked at most once
// per Type by a Registry.
type Constructor func() Observer

// Registry holds one observer instance per Type, in registration order.
type Registry struct {
	mu        sync.Mutex
	observers map[Type]Observer
	order     []Type
}

// NewRegistry returns an empty observer registry.
func NewRegistry() *Registry {
	return &Registry{observers: make(map[Type]Observer)}
}

// Add registers an observer under the given type. The first call for a
// type invokes construct and caches the result; subsequent calls return
// the cached instance. The second return reports whether the instance was
// created by this call.
func (r *Registry) Add(t Type, construct Constructor) (Observer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if obs, ok := r.observers[t]; ok {
		return obs, false
	}
	obs := construct()
	r.observers[t] = obs
	r.order = append(r.order, t)
	return obs, true
}

// Get returns the registered observer for the type, if any.
func (r *Registry) Get(t Type) (Observer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	obs, ok := r.observers[t]
	return obs, ok
}

// Len returns the number of registered observers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers)
}

// Each calls fn for every registered observer in registration order.
func (r *Registry) Each(fn func(Type, Observer)) {
	r.mu.Lock()
	types := make([]Type, len(r.order))
	copy(types, r.order)
	observers := make([]Observer, 0, len(types))
	for _, t := range types {
		observers = append(observers, r.observers[t])
	}
	r.mu.Unlock()

	for i, t := range types {
		fn(t, observers[i])
	}
}

// EnableAll enables every registered observer in registration order.
func (r *Registry) EnableAll() {
	r.Each(func(_ Type, obs Observer) { obs.Enable() })
}

// DisableAll disables every registered observer in registration order.
func (r *Registry) DisableAll() {
	r.Each(func(_ Type, obs Observer) { obs.Disable() })
}

// DetachAll detaches every registered observer that holds per-root
// resources.
func (r *Registry) DetachAll() {
	r.Each(func(_ Type, obs Observer) {
		if d, ok := obs.(Detacher); ok {
			d.Detach()
		}
	})
}
