package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element node with the given tag name.
func NewElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText creates a detached text node.
func NewText(data string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: data,
	}
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the child of n at the given index, or nil.
// html.Node children are a linked list, so this is a walk.
func ChildAt(n *html.Node, index int) *html.Node {
	if index < 0 {
		return nil
	}
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if count == index {
			return c
		}
		count++
	}
	return nil
}

// ChildIndex returns the index of child within parent, or -1.
func ChildIndex(parent, child *html.Node) int {
	count := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			return count
		}
		count++
	}
	return -1
}

// Children returns the children of n as a slice.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Root returns the topmost ancestor of n (possibly n itself).
func Root(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// InsertChildAt inserts child into parent at the given index. A child that is
// attached elsewhere is detached first, so inserts double as moves.
func InsertChildAt(parent, child *html.Node, index int) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}

	// Bounds are checked before any detach so a failed insert leaves the
	// child where it was. A same-parent move vacates one slot.
	count := ChildCount(parent)
	if child.Parent == parent {
		count--
	}
	if index < 0 || index > count {
		return ErrIndexOutOfRange
	}

	if child.Parent != nil {
		if err := RemoveChild(child.Parent, child); err != nil {
			return err
		}
	}

	before := ChildAt(parent, index) // nil appends
	parent.InsertBefore(child, before)

	notifyChildList(parent, []*html.Node{child}, nil)
	return nil
}

// AppendChild inserts child as the last child of parent.
func AppendChild(parent, child *html.Node) error {
	return InsertChildAt(parent, child, ChildCount(parent))
}

// RemoveChildAt removes and returns the child of parent at the given index.
func RemoveChildAt(parent *html.Node, index int) (*html.Node, error) {
	child := ChildAt(parent, index)
	if child == nil {
		return nil, ErrIndexOutOfRange
	}
	// Observers see the parent before the detach clears the link.
	notifyChildList(parent, nil, []*html.Node{child})
	parent.RemoveChild(child)
	return child, nil
}

// RemoveChild removes the given child from parent.
func RemoveChild(parent, child *html.Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if child.Parent != parent {
		return ErrNotAChild
	}
	notifyChildList(parent, nil, []*html.Node{child})
	parent.RemoveChild(child)
	return nil
}

// RemoveAllChildren detaches every child of parent. As with the single-child
// removals, observers are notified before the detach clears the links.
func RemoveAllChildren(parent *html.Node) {
	removed := Children(parent)
	if len(removed) == 0 {
		return
	}
	notifyChildList(parent, nil, removed)
	for _, c := range removed {
		parent.RemoveChild(c)
	}
}

// GetAttr returns the value of the named attribute on n.
func GetAttr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute on n, preserving attribute order for existing
// keys, and notifies observers with the old value.
func SetAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			if a.Val == value {
				return
			}
			n.Attr[i].Val = value
			notifyAttribute(n, name, a.Val)
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	notifyAttribute(n, name, "")
}

// RemoveAttr removes an attribute from n, reporting whether it existed.
func RemoveAttr(n *html.Node, name string) bool {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			notifyAttribute(n, name, a.Val)
			return true
		}
	}
	return false
}

// AttrNames returns the attribute names of n in order.
func AttrNames(n *html.Node) []string {
	names := make([]string, len(n.Attr))
	for i, a := range n.Attr {
		names[i] = a.Key
	}
	return names
}

// SetTextData replaces the data of a text node and notifies observers with
// the old value.
func SetTextData(n *html.Node, data string) {
	if n.Type != html.TextNode || n.Data == data {
		return
	}
	old := n.Data
	n.Data = data
	notifyCharacterData(n, old)
}

// Serialize renders a node tree to its HTML string form.
func Serialize(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseFragment parses an HTML fragment in a div context and returns the
// top-level nodes.
func ParseFragment(fragment string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(fragment), ctx)
}
