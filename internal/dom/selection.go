package dom

import (
	"sync"

	"golang.org/x/net/html"
)

// Caret is one end of the native selection: a DOM node plus an offset.
type Caret struct {
	Node   *html.Node
	Offset int
}

// Selection holds the native selection state over a DOM tree. It is volatile:
// any structural mutation of a subtree containing an end must be followed by
// a re-apply from the view selection, which is exactly what the renderer does.
type Selection struct {
	mu     sync.Mutex
	anchor Caret
	focus  Caret
	active bool
}

// NewSelection creates an empty native selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Set replaces the selection with the given anchor and focus.
func (s *Selection) Set(anchor, focus Caret) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anchor = anchor
	s.focus = focus
	s.active = true
}

// Clear removes the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anchor = Caret{}
	s.focus = Caret{}
	s.active = false
}

// Get returns the anchor, focus and whether a selection is present.
func (s *Selection) Get() (anchor, focus Caret, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchor, s.focus, s.active
}

// IsCollapsed reports whether the selection is a bare caret.
func (s *Selection) IsCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active && s.anchor == s.focus
}
