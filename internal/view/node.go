package view

// ChangeKind identifies which aspect of a node changed.
type ChangeKind uint8

const (
	// ChildrenChange indicates the node's child list changed.
	ChildrenChange ChangeKind = iota

	// AttributesChange indicates the node's attributes changed.
	AttributesChange

	// TextChange indicates a text node's data changed.
	TextChange
)

// String returns the string representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChildrenChange:
		return "children"
	case AttributesChange:
		return "attributes"
	case TextChange:
		return "text"
	default:
		return "unknown"
	}
}

// Change is a single change record emitted by the view tree.
type Change struct {
	// Kind is the aspect of the node that changed.
	Kind ChangeKind

	// Node is the affected node: the parent for ChildrenChange, the element
	// for AttributesChange, the text node for TextChange.
	Node Node
}

// ChangeSink receives change records from a view tree.
// The document aggregate implements it by posting into its mailbox.
type ChangeSink interface {
	NotifyChange(change Change)
}

// Node is a node of the view tree: either an *Element or a *Text.
type Node interface {
	// Parent returns the parent element, or nil for a detached node or root.
	Parent() *Element

	// Index returns the node's index in its parent, or -1 if detached.
	Index() int

	// Root returns the topmost ancestor of the node (possibly the node itself).
	Root() Node

	setParent(p *Element)
}

// IsAncestorOf reports whether ancestor is a proper ancestor of n.
func IsAncestorOf(ancestor *Element, n Node) bool {
	if ancestor == nil || n == nil {
		return false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p == ancestor {
			return true
		}
	}
	return false
}
