package view

// Writer is the mutation API for the view tree. Higher layers (commands,
// input handling) mutate content exclusively through a Writer; the change
// records emitted by the tree drive the renderer's dirty set.
//
// A Writer carries no state of its own, but funneling mutations through it
// keeps the tree's read surface and write surface separate.
type Writer struct{}

// NewWriter creates a writer.
func NewWriter() *Writer {
	return &Writer{}
}

// InsertChild inserts node into parent at the given index. A node that
// already has a parent is moved: it is detached from the old parent first,
// which emits a ChildrenChange for both parents.
func (w *Writer) InsertChild(parent *Element, index int, node Node) error {
	if parent == nil {
		return ErrNilNode
	}
	return parent.insertChild(index, node)
}

// AppendChild inserts node as the last child of parent.
func (w *Writer) AppendChild(parent *Element, node Node) error {
	if parent == nil {
		return ErrNilNode
	}
	return parent.insertChild(parent.ChildCount(), node)
}

// RemoveChildren removes count children of parent starting at index and
// returns the detached nodes.
func (w *Writer) RemoveChildren(parent *Element, index, count int) ([]Node, error) {
	if parent == nil {
		return nil, ErrNilNode
	}
	return parent.removeChildren(index, count)
}

// SetAttribute sets an attribute on the element.
func (w *Writer) SetAttribute(el *Element, name, value string) {
	if el == nil {
		return
	}
	el.setAttribute(name, value)
}

// RemoveAttribute removes an attribute, reporting whether it existed.
func (w *Writer) RemoveAttribute(el *Element, name string) bool {
	if el == nil {
		return false
	}
	return el.removeAttribute(name)
}

// SetText replaces the data of a text node.
func (w *Writer) SetText(t *Text, data string) {
	if t == nil {
		return
	}
	t.setData(data)
}
