package toolbar

import (
	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
)

// SeparatorName is the configuration sentinel for a visual separator.
const SeparatorName = "|"

// Item is one toolbar entry backed by a DOM element.
type Item interface {
	Name() string
	Element() *html.Node
	Focusable() bool
}

// Factory resolves configuration item names to items. Create reports false
// for names it does not recognize.
type Factory interface {
	Create(name string) (Item, bool)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(name string) (Item, bool)

// Create implements Factory.
func (f FactoryFunc) Create(name string) (Item, bool) { return f(name) }

// Button is a focusable labeled toolbar item.
type Button struct {
	name string
	el   *html.Node
}

// NewButton creates a button item. Its cell width is the label width plus
// one cell of padding on each side.
func NewButton(name, label string) *Button {
	el := dom.NewElement("button")
	dom.SetAttr(el, "data-name", name)
	dom.SetAttr(el, "style", "padding-left:1; padding-right:1")
	dom.AppendChild(el, dom.NewText(label))
	return &Button{name: name, el: el}
}

// Name returns the item's configuration name.
func (b *Button) Name() string { return b.name }

// Element returns the item's DOM element.
func (b *Button) Element() *html.Node { return b.el }

// Focusable reports that buttons participate in focus cycling.
func (b *Button) Focusable() bool { return true }

// Separator is a one-cell visual divider between items.
type Separator struct {
	el *html.Node
}

// NewSeparator creates a separator item.
func NewSeparator() *Separator {
	el := dom.NewElement("span")
	dom.SetAttr(el, "class", "separator")
	dom.SetAttr(el, "style", "width: 1")
	dom.AppendChild(el, dom.NewText("|"))
	return &Separator{el: el}
}

// Name returns the separator sentinel.
func (s *Separator) Name() string { return SeparatorName }

// Element returns the separator's DOM element.
func (s *Separator) Element() *html.Node { return s.el }

// Focusable reports that separators are skipped by focus cycling.
func (s *Separator) Focusable() bool { return false }
