package observer

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
)

// MutationHandler receives mutation records from a MutationObserver along
// with the name of the root the mutation occurred under.
type MutationHandler func(rootName string, record dom.Record)

// MutationObserver forwards DOM mutation records to a handler. While
// disabled, records are dropped; re-enabling resumes delivery without
// re-attaching.
type MutationObserver struct {
	mu      sync.Mutex
	enabled bool
	handler MutationHandler
	regs    []*dom.Registration
}

// NewMutationObserver returns a mutation observer delivering to handler.
// The observer starts disabled; registries enable it on first registration.
func NewMutationObserver(handler MutationHandler) *MutationObserver {
	return &MutationObserver{handler: handler}
}

// Observe attaches the observer to a DOM root.
func (m *MutationObserver) Observe(root *html.Node, rootName string) {
	reg := dom.Observe(root, dom.CallbackFunc(func(r dom.Record) {
		m.mu.Lock()
		enabled := m.enabled
		handler := m.handler
		m.mu.Unlock()
		if enabled && handler != nil {
			handler(rootName, r)
		}
	}))
	if reg == nil {
		return
	}
	m.mu.Lock()
	m.regs = append(m.regs, reg)
	m.mu.Unlock()
}

// Enable resumes record delivery.
func (m *MutationObserver) Enable() {
	m.mu.Lock()
	m.enabled = true
	m.mu.Unlock()
}

// Disable suppresses record delivery.
func (m *MutationObserver) Disable() {
	m.mu.Lock()
	m.enabled = false
	m.mu.Unlock()
}

// Detach cancels every DOM registration held by the observer.
func (m *MutationObserver) Detach() {
	m.mu.Lock()
	regs := m.regs
	m.regs = nil
	m.mu.Unlock()
	for _, reg := range regs {
		dom.Unobserve(reg)
	}
}

// FocusObserver tracks which named root currently holds focus. Focus
// reports arriving while the observer is disabled are dropped.
type FocusObserver struct {
	mu      sync.Mutex
	enabled bool
	focused string
	hasFoc  bool
}

// NewFocusObserver returns a focus observer with no focused root.
func NewFocusObserver() *FocusObserver {
	return &FocusObserver{}
}

// Observe implements Observer. Focus tracking is name-based, so attaching
// records nothing per root.
func (f *FocusObserver) Observe(*html.Node, string) {}

// Enable resumes focus tracking.
func (f *FocusObserver) Enable() {
	f.mu.Lock()
	f.enabled = true
	f.mu.Unlock()
}

// Disable suspends focus tracking.
func (f *FocusObserver) Disable() {
	f.mu.Lock()
	f.enabled = false
	f.mu.Unlock()
}

// ReportFocus records that the named root gained focus.
func (f *FocusObserver) ReportFocus(rootName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.enabled {
		return
	}
	f.focused = rootName
	f.hasFoc = true
}

// ReportBlur records that the named root lost focus. Blur of a root that
// is not focused is ignored.
func (f *FocusObserver) ReportBlur(rootName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.enabled || !f.hasFoc || f.focused != rootName {
		return
	}
	f.focused = ""
	f.hasFoc = false
}

// FocusedRoot returns the name of the focused root, if any.
func (f *FocusObserver) FocusedRoot() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused, f.hasFoc
}

// CompositionObserver tracks in-progress IME composition per named root.
// Composition transitions arriving while disabled are dropped.
type CompositionObserver struct {
	mu        sync.Mutex
	enabled   bool
	composing map[string]bool
}

// NewCompositionObserver returns a composition observer with no active
// compositions.
func NewCompositionObserver() *CompositionObserver {
	return &CompositionObserver{composing: make(map[string]bool)}
}

// Observe implements Observer. Composition state is name-based, so
// attaching records nothing per root.
func (c *CompositionObserver) Observe(*html.Node, string) {}

// Enable resumes composition tracking.
func (c *CompositionObserver) Enable() {
	c.mu.Lock()
	c.enabled = true
	c.mu.Unlock()
}

// Disable suspends composition tracking.
func (c *CompositionObserver) Disable() {
	c.mu.Lock()
	c.enabled = false
	c.mu.Unlock()
}

// BeginComposition marks the named root as composing.
func (c *CompositionObserver) BeginComposition(rootName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.composing[rootName] = true
}

// EndComposition clears the composing state of the named root.
func (c *CompositionObserver) EndComposition(rootName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	delete(c.composing, rootName)
}

// IsComposing reports whether the named root has an active composition.
func (c *CompositionObserver) IsComposing(rootName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composing[rootName]
}
