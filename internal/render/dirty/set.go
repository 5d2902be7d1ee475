// Package dirty tracks the pending-change working set consumed by each
// render pass. Entries are (node, change-kind) pairs merged on insert: a
// children mark on an ancestor subsumes every mark in its subtree, and exact
// duplicates collapse. The set is drained only after a render pass applies
// every entry, so a failed pass can be retried against the same set.
package dirty

import (
	"sync"

	"github.com/vellum-editor/vellum/internal/view"
)

// Entry is a single pending change.
type Entry struct {
	Kind view.ChangeKind
	Node view.Node
}

// Set is the dirty working set. Safe for concurrent marking, though render
// passes themselves are serialized by the document.
type Set struct {
	mu      sync.Mutex
	entries []Entry

	marked uint64
	merged uint64
}

// NewSet creates an empty dirty set.
func NewSet() *Set {
	return &Set{entries: make([]Entry, 0, 16)}
}

// Mark records a pending change. Duplicate marks and marks subsumed by an
// existing ancestor children-mark are merged away; a new children mark
// evicts any existing marks inside its subtree.
func (s *Set) Mark(kind view.ChangeKind, node view.Node) {
	if node == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.marked++

	for _, e := range s.entries {
		if e.Kind == kind && e.Node == node {
			s.merged++
			return
		}
		if e.Kind == view.ChildrenChange && subsumes(e.Node, node) {
			s.merged++
			return
		}
	}

	if kind == view.ChildrenChange {
		if el, ok := node.(*view.Element); ok {
			kept := s.entries[:0]
			for _, e := range s.entries {
				if view.IsAncestorOf(el, e.Node) {
					s.merged++
					continue
				}
				kept = append(kept, e)
			}
			s.entries = kept
		}
	}

	s.entries = append(s.entries, Entry{Kind: kind, Node: node})
}

// subsumes reports whether a children mark on marked covers node: true only
// for nodes strictly inside marked's subtree. A mark of a different kind on
// the marked node itself is not covered, since children reconciliation does
// not touch the node's own attributes.
func subsumes(marked, node view.Node) bool {
	el, ok := marked.(*view.Element)
	return ok && view.IsAncestorOf(el, node)
}

// Snapshot returns a copy of the current entries in mark order.
// The set itself is left untouched; call Clear after a successful pass.
func (s *Set) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear drops all entries. Called by the renderer only after every snapshot
// entry has been applied.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}

// Len returns the number of pending entries.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// IsEmpty reports whether the set has no pending entries.
func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// Stats returns counters describing the set's activity.
func (s *Set) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Pending: len(s.entries),
		Marked:  s.marked,
		Merged:  s.merged,
	}
}

// Stats contains dirty-set counters.
type Stats struct {
	// Pending is the number of entries awaiting a render pass.
	Pending int

	// Marked is the total number of Mark calls.
	Marked uint64

	// Merged is the number of marks collapsed into existing entries.
	Merged uint64
}
