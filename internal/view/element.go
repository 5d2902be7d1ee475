package view

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Name  string
	Value string
}

// Element is a view-tree element: a tag name, an ordered set of uniquely
// named attributes and an ordered list of child nodes.
type Element struct {
	name     string
	attrs    []Attribute
	children []Node
	parent   *Element

	// sink is set on root elements only. Descendants reach it through the
	// parent chain, which keeps the back-reference to the owning document
	// a lookup, not an ownership edge.
	sink ChangeSink
}

// NewElement creates a detached element with the given tag name and attributes.
// Later duplicates among attrs overwrite earlier ones.
func NewElement(name string, attrs ...Attribute) *Element {
	e := &Element{name: name}
	for _, a := range attrs {
		e.putAttribute(a.Name, a.Value)
	}
	return e
}

// Name returns the element's tag name.
func (e *Element) Name() string { return e.name }

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Index returns the element's index in its parent, or -1 if detached.
func (e *Element) Index() int {
	if e.parent == nil {
		return -1
	}
	return e.parent.ChildIndex(e)
}

// Root returns the topmost ancestor of the element.
func (e *Element) Root() Node {
	var n Node = e
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

func (e *Element) setParent(p *Element) { e.parent = p }

// SetChangeSink attaches a change sink to the element, making it a root.
// Mutations anywhere in the subtree notify the sink.
func (e *Element) SetChangeSink(s ChangeSink) { e.sink = s }

// ChildCount returns the number of children.
func (e *Element) ChildCount() int { return len(e.children) }

// Child returns the child at the given index, or nil if out of range.
func (e *Element) Child(index int) Node {
	if index < 0 || index >= len(e.children) {
		return nil
	}
	return e.children[index]
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// ChildIndex returns the index of the given child, or -1.
func (e *Element) ChildIndex(n Node) int {
	for i, c := range e.children {
		if c == n {
			return i
		}
	}
	return -1
}

// Attribute returns the value of the named attribute.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attributes returns a copy of the attribute list in insertion order.
func (e *Element) Attributes() []Attribute {
	out := make([]Attribute, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// AttributeCount returns the number of attributes.
func (e *Element) AttributeCount() int { return len(e.attrs) }

// notifySink climbs to the root and delivers the change record to the root's
// sink, if one is attached. Detached subtrees change silently.
func (e *Element) notifySink(change Change) {
	root := e.Root()
	if rootEl, ok := root.(*Element); ok && rootEl.sink != nil {
		rootEl.sink.NotifyChange(change)
	}
}

// putAttribute sets an attribute preserving order and uniqueness.
// It reports whether the attribute list actually changed.
func (e *Element) putAttribute(name, value string) bool {
	for i, a := range e.attrs {
		if a.Name == name {
			if a.Value == value {
				return false
			}
			e.attrs[i].Value = value
			return true
		}
	}
	e.attrs = append(e.attrs, Attribute{Name: name, Value: value})
	return true
}

// setAttribute sets an attribute and notifies the sink on change.
func (e *Element) setAttribute(name, value string) {
	if e.putAttribute(name, value) {
		e.notifySink(Change{Kind: AttributesChange, Node: e})
	}
}

// removeAttribute removes an attribute, reporting whether it existed.
func (e *Element) removeAttribute(name string) bool {
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			e.notifySink(Change{Kind: AttributesChange, Node: e})
			return true
		}
	}
	return false
}

// insertChild inserts a node at the given index. A node that already has a
// parent is removed from it first, so an insert doubles as a move. Inserting
// a node into itself or into one of its descendants is an error.
func (e *Element) insertChild(index int, n Node) error {
	if n == nil {
		return ErrNilNode
	}
	if index < 0 || index > len(e.children) {
		return ErrIndexOutOfRange
	}
	if n == Node(e) {
		return ErrCycleDetected
	}
	if el, ok := n.(*Element); ok && IsAncestorOf(el, e) {
		return ErrCycleDetected
	}

	if p := n.Parent(); p != nil {
		i := p.ChildIndex(n)
		if _, err := p.removeChildren(i, 1); err != nil {
			return err
		}
		if p == e && i < index {
			index--
		}
	}

	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = n
	n.setParent(e)

	e.notifySink(Change{Kind: ChildrenChange, Node: e})
	return nil
}

// removeChildren removes count children starting at index and returns them.
func (e *Element) removeChildren(index, count int) ([]Node, error) {
	if count < 0 || index < 0 || index+count > len(e.children) {
		return nil, ErrIndexOutOfRange
	}
	if count == 0 {
		return nil, nil
	}

	removed := make([]Node, count)
	copy(removed, e.children[index:index+count])
	e.children = append(e.children[:index], e.children[index+count:]...)
	for _, n := range removed {
		n.setParent(nil)
	}

	e.notifySink(Change{Kind: ChildrenChange, Node: e})
	return removed, nil
}
