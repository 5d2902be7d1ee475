package render

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
	"github.com/vellum-editor/vellum/internal/view"
)

// DomConverter maintains the bidirectional binding between view nodes and
// native DOM nodes, and converts view subtrees into freshly created DOM
// subtrees, binding as it goes.
type DomConverter struct {
	mu        sync.RWMutex
	viewToDOM map[view.Node]*html.Node
	domToView map[*html.Node]view.Node
}

// NewDomConverter creates an empty converter.
func NewDomConverter() *DomConverter {
	return &DomConverter{
		viewToDOM: make(map[view.Node]*html.Node),
		domToView: make(map[*html.Node]view.Node),
	}
}

// Bind records a pairing between a view node and a DOM node.
func (c *DomConverter) Bind(viewNode view.Node, domNode *html.Node) {
	if viewNode == nil || domNode == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewToDOM[viewNode] = domNode
	c.domToView[domNode] = viewNode
}

// Unbind removes the pairing for the view node and its whole subtree.
func (c *DomConverter) Unbind(viewNode view.Node) {
	if viewNode == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unbindLocked(viewNode)
}

func (c *DomConverter) unbindLocked(viewNode view.Node) {
	if d, ok := c.viewToDOM[viewNode]; ok {
		delete(c.viewToDOM, viewNode)
		delete(c.domToView, d)
	}
	if el, ok := viewNode.(*view.Element); ok {
		for _, child := range el.Children() {
			c.unbindLocked(child)
		}
	}
}

// ViewToDOM returns the DOM node bound to the view node.
func (c *DomConverter) ViewToDOM(viewNode view.Node) (*html.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.viewToDOM[viewNode]
	return d, ok
}

// DOMToView returns the view node bound to the DOM node.
func (c *DomConverter) DOMToView(domNode *html.Node) (view.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.domToView[domNode]
	return v, ok
}

// BindingCount returns the number of bound pairs.
func (c *DomConverter) BindingCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.viewToDOM)
}

// Convert returns the DOM node for a view node, creating and binding a fresh
// DOM subtree if the node is not bound yet. Attributes and descendants are
// converted along with a new element.
func (c *DomConverter) Convert(viewNode view.Node) *html.Node {
	if d, ok := c.ViewToDOM(viewNode); ok {
		return d
	}

	switch n := viewNode.(type) {
	case *view.Text:
		d := dom.NewText(n.Data())
		c.Bind(n, d)
		return d
	case *view.Element:
		d := dom.NewElement(n.Name())
		for _, a := range n.Attributes() {
			d.Attr = append(d.Attr, html.Attribute{Key: a.Name, Val: a.Value})
		}
		c.Bind(n, d)
		for _, child := range n.Children() {
			d.AppendChild(c.Convert(child))
		}
		return d
	default:
		return nil
	}
}

// ViewPositionToDOM maps a view position to a native caret through the
// binding table. The offset carries over directly: child index for elements,
// byte offset for text nodes.
func (c *DomConverter) ViewPositionToDOM(pos view.Position) (dom.Caret, bool) {
	if pos.Node == nil {
		return dom.Caret{}, false
	}
	d, ok := c.ViewToDOM(pos.Node)
	if !ok {
		return dom.Caret{}, false
	}
	return dom.Caret{Node: d, Offset: pos.Offset}, true
}
