package view

// Position is a location in the view tree: a node plus an offset. For an
// element the offset counts children; for a text node it counts bytes of the
// text data.
type Position struct {
	Node   Node
	Offset int
}

// IsValid reports whether the position points inside its node's bounds.
func (p Position) IsValid() bool {
	if p.Node == nil || p.Offset < 0 {
		return false
	}
	switch n := p.Node.(type) {
	case *Element:
		return p.Offset <= n.ChildCount()
	case *Text:
		return p.Offset <= len(n.Data())
	default:
		return false
	}
}

// Equal reports whether two positions reference the same place.
func (p Position) Equal(other Position) bool {
	return p.Node == other.Node && p.Offset == other.Offset
}

// Range is a pair of positions over the view tree. Start and End may be in
// different nodes; a collapsed range has Start == End.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a range between two positions.
func NewRange(start, end Position) Range {
	return Range{Start: start, End: end}
}

// CollapsedRange creates a range collapsed to a single position.
func CollapsedRange(pos Position) Range {
	return Range{Start: pos, End: pos}
}

// IsCollapsed reports whether the range is collapsed to one position.
func (r Range) IsCollapsed() bool {
	return r.Start.Equal(r.End)
}

// ContainsNode reports whether n or one of its ancestors is the node of
// either boundary position. It is a coarse overlap test used by the renderer
// to decide whether a mutated subtree can invalidate the selection.
func (r Range) ContainsNode(n Node) bool {
	return boundaryWithin(r.Start, n) || boundaryWithin(r.End, n)
}

// boundaryWithin reports whether the position's node is n or lies inside
// the subtree rooted at n.
func boundaryWithin(p Position, n Node) bool {
	if p.Node == nil || n == nil {
		return false
	}
	if p.Node == n {
		return true
	}
	if el, ok := n.(*Element); ok {
		return IsAncestorOf(el, p.Node)
	}
	return false
}
