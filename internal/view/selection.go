package view

// Selection is an ordered sequence of ranges over the view tree, with a
// direction flag. The renderer reads it to restore the native caret state
// after DOM mutation; editing commands mutate it.
type Selection struct {
	ranges   []Range
	backward bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// SetTo replaces the selection's ranges. A backward selection has its focus
// at the start of the first range instead of the end of the last.
func (s *Selection) SetTo(ranges []Range, backward bool) {
	s.ranges = make([]Range, len(ranges))
	copy(s.ranges, ranges)
	s.backward = backward
}

// SetToPosition collapses the selection to a single position.
func (s *Selection) SetToPosition(pos Position) {
	s.SetTo([]Range{CollapsedRange(pos)}, false)
}

// Clear removes all ranges.
func (s *Selection) Clear() {
	s.ranges = nil
	s.backward = false
}

// IsEmpty reports whether the selection has no ranges.
func (s *Selection) IsEmpty() bool {
	return len(s.ranges) == 0
}

// IsBackward reports the selection direction.
func (s *Selection) IsBackward() bool {
	return s.backward
}

// RangeCount returns the number of ranges.
func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// Ranges returns a copy of the selection's ranges.
func (s *Selection) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Anchor returns the stationary end of the selection, or false if empty.
func (s *Selection) Anchor() (Position, bool) {
	if len(s.ranges) == 0 {
		return Position{}, false
	}
	if s.backward {
		return s.ranges[len(s.ranges)-1].End, true
	}
	return s.ranges[0].Start, true
}

// Focus returns the moving end of the selection, or false if empty.
func (s *Selection) Focus() (Position, bool) {
	if len(s.ranges) == 0 {
		return Position{}, false
	}
	if s.backward {
		return s.ranges[0].Start, true
	}
	return s.ranges[len(s.ranges)-1].End, true
}

// OverlapsNode reports whether any range boundary lies on n or inside its
// subtree.
func (s *Selection) OverlapsNode(n Node) bool {
	for _, r := range s.ranges {
		if r.ContainsNode(n) {
			return true
		}
	}
	return false
}
