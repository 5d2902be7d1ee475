package toolbar

import (
	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
)

// StaticBehavior displays items one-to-one with no geometry measurement.
type StaticBehavior struct {
	itemsEl  *html.Node
	vertical bool
	items    []Item
}

func newStaticBehavior(itemsEl *html.Node, vertical bool) *StaticBehavior {
	return &StaticBehavior{itemsEl: itemsEl, vertical: vertical}
}

// IsVertical reports whether the toolbar lays out as a column.
func (b *StaticBehavior) IsVertical() bool { return b.vertical }

// InsertItem places an item at the given index.
func (b *StaticBehavior) InsertItem(index int, it Item) error {
	if index < 0 || index > len(b.items) {
		return dom.ErrIndexOutOfRange
	}
	if err := dom.InsertChildAt(b.itemsEl, it.Element(), index); err != nil {
		return err
	}
	b.items = append(b.items, nil)
	copy(b.items[index+1:], b.items[index:])
	b.items[index] = it
	return nil
}

// RemoveItem removes the named item.
func (b *StaticBehavior) RemoveItem(name string) bool {
	for i, it := range b.items {
		if it.Name() == name {
			dom.RemoveChild(b.itemsEl, it.Element())
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns all items in order.
func (b *StaticBehavior) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

// Focusables returns the focusable items.
func (b *StaticBehavior) Focusables() []Item {
	out := make([]Item, 0, len(b.items))
	for _, it := range b.items {
		if it.Focusable() {
			out = append(out, it)
		}
	}
	return out
}

// ContainerResized is a no-op: static toolbars never re-layout.
func (b *StaticBehavior) ContainerResized(int) {}
