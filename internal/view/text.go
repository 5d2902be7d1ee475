package view

// Text is a view-tree text node. Its data is only mutable through the Writer,
// which replaces it wholesale and emits a TextChange record.
type Text struct {
	data   string
	parent *Element
}

// NewText creates a detached text node.
func NewText(data string) *Text {
	return &Text{data: data}
}

// Data returns the text content.
func (t *Text) Data() string { return t.data }

// Parent returns the parent element, or nil.
func (t *Text) Parent() *Element { return t.parent }

// Index returns the node's index in its parent, or -1 if detached.
func (t *Text) Index() int {
	if t.parent == nil {
		return -1
	}
	return t.parent.ChildIndex(t)
}

// Root returns the topmost ancestor of the node.
func (t *Text) Root() Node {
	if t.parent == nil {
		return t
	}
	return t.parent.Root()
}

func (t *Text) setParent(p *Element) { t.parent = p }

// setData replaces the text data and notifies the sink on change.
func (t *Text) setData(data string) {
	if t.data == data {
		return
	}
	t.data = data
	if t.parent != nil {
		t.parent.notifySink(Change{Kind: TextChange, Node: t})
	}
}
