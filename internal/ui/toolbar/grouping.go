package toolbar

import (
	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
	"github.com/vellum-editor/vellum/internal/logging"
	"github.com/vellum-editor/vellum/internal/ui/layout"
)

// GroupedDropdownName is the focusable name of the grouped-items dropdown.
const GroupedDropdownName = "grouped-items"

// dropdownProxy is the focusable stand-in for the grouped-items dropdown.
type dropdownProxy struct {
	el *html.Node
}

func (p *dropdownProxy) Name() string        { return GroupedDropdownName }
func (p *dropdownProxy) Element() *html.Node { return p.el }
func (p *dropdownProxy) Focusable() bool     { return true }

// GroupingBehavior partitions items into an ungrouped (visible) collection
// and a grouped collection living in a dropdown. Logical item order is
// always ungrouped followed by grouped. Membership is recomputed by a
// measure-then-correct loop after every insertion, removal and container
// resize.
type GroupingBehavior struct {
	el      *html.Node // toolbar container
	itemsEl *html.Node // visible items container

	measurer *layout.Measurer
	dir      layout.Direction
	log      *logging.Logger

	ungrouped []Item
	grouped   []Item

	// Created lazily the first time an item is grouped, then reused.
	separator *html.Node
	dropdown  *dropdownProxy
	panel     *html.Node

	lastWidth int
	hasWidth  bool
}

func newGroupingBehavior(el, itemsEl *html.Node, m *layout.Measurer, dir layout.Direction, log *logging.Logger) *GroupingBehavior {
	return &GroupingBehavior{
		el:       el,
		itemsEl:  itemsEl,
		measurer: m,
		dir:      dir,
		log:      log,
	}
}

// InsertItem places an item at the given logical index: into the ungrouped
// collection when the index falls within it, else into the grouped
// collection at the offset index.
func (b *GroupingBehavior) InsertItem(index int, it Item) error {
	if index < 0 || index > len(b.ungrouped)+len(b.grouped) {
		return dom.ErrIndexOutOfRange
	}
	if index <= len(b.ungrouped) {
		if err := dom.InsertChildAt(b.itemsEl, it.Element(), index); err != nil {
			return err
		}
		b.ungrouped = insertItem(b.ungrouped, index, it)
	} else {
		offset := index - len(b.ungrouped)
		b.ensureDropdown()
		if err := dom.InsertChildAt(b.panel, it.Element(), offset); err != nil {
			return err
		}
		b.grouped = insertItem(b.grouped, offset, it)
	}
	b.UpdateGrouping()
	return nil
}

// RemoveItem removes the named item from whichever collection holds it.
func (b *GroupingBehavior) RemoveItem(name string) bool {
	for i, it := range b.ungrouped {
		if it.Name() == name {
			dom.RemoveChild(b.itemsEl, it.Element())
			b.ungrouped = append(b.ungrouped[:i], b.ungrouped[i+1:]...)
			b.UpdateGrouping()
			return true
		}
	}
	for i, it := range b.grouped {
		if it.Name() == name {
			dom.RemoveChild(b.panel, it.Element())
			b.grouped = append(b.grouped[:i], b.grouped[i+1:]...)
			if len(b.grouped) == 0 {
				b.detachDropdown()
			}
			b.UpdateGrouping()
			return true
		}
	}
	return false
}

// Items returns all items in logical order: ungrouped then grouped.
func (b *GroupingBehavior) Items() []Item {
	out := make([]Item, 0, len(b.ungrouped)+len(b.grouped))
	out = append(out, b.ungrouped...)
	out = append(out, b.grouped...)
	return out
}

// Ungrouped returns the visible items.
func (b *GroupingBehavior) Ungrouped() []Item {
	out := make([]Item, len(b.ungrouped))
	copy(out, b.ungrouped)
	return out
}

// Grouped returns the items held in the dropdown.
func (b *GroupingBehavior) Grouped() []Item {
	out := make([]Item, len(b.grouped))
	copy(out, b.grouped)
	return out
}

// Focusables returns the focusable ungrouped items plus, while any item is
// grouped, the dropdown proxy.
func (b *GroupingBehavior) Focusables() []Item {
	out := make([]Item, 0, len(b.ungrouped)+1)
	for _, it := range b.ungrouped {
		if it.Focusable() {
			out = append(out, it)
		}
	}
	if len(b.grouped) > 0 && b.dropdown != nil {
		out = append(out, b.dropdown)
	}
	return out
}

// ContainerResized records a new content width and re-evaluates grouping.
// An unchanged width is skipped.
func (b *GroupingBehavior) ContainerResized(width int) {
	if b.hasWidth && b.lastWidth == width {
		return
	}
	b.lastWidth = width
	b.hasWidth = true
	b.measurer.SetContainerWidth(width)
	b.UpdateGrouping()
}

// UpdateGrouping runs the measure-then-correct loop. Measurement requires
// the toolbar to be attached and to have seen a container width; until
// then this is a no-op precondition, not an error.
func (b *GroupingBehavior) UpdateGrouping() {
	if !b.hasWidth || b.el.Parent == nil {
		return
	}

	if b.overflows() {
		// Move trailing visible items into the group until the rest fits.
		for b.overflows() && len(b.ungrouped) > 0 {
			b.groupLast()
		}
	} else {
		// Move grouped items back front-to-back while they fit. Overflow
		// is only detectable after the move is reflected in the DOM, so a
		// move that turns out not to fit is undone.
		for len(b.grouped) > 0 {
			b.ungroupFirst()
			if b.overflows() {
				b.groupLast()
				break
			}
		}
	}

	if len(b.grouped) == 0 {
		b.detachDropdown()
	}
}

func (b *GroupingBehavior) overflows() bool {
	return b.measurer.Overflows(b.el, b.dir)
}

// groupLast moves the last ungrouped item to the front of the group.
func (b *GroupingBehavior) groupLast() {
	last := len(b.ungrouped) - 1
	it := b.ungrouped[last]
	b.ungrouped = b.ungrouped[:last]

	b.ensureDropdown()
	b.attachDropdown()
	dom.RemoveChild(b.itemsEl, it.Element())
	dom.InsertChildAt(b.panel, it.Element(), 0)
	b.grouped = insertItem(b.grouped, 0, it)
}

// ungroupFirst moves the first grouped item to the end of the visible
// items. When the group empties, the separator and dropdown leave the
// toolbar before the caller re-measures.
func (b *GroupingBehavior) ungroupFirst() {
	it := b.grouped[0]
	b.grouped = b.grouped[1:]

	dom.RemoveChild(b.panel, it.Element())
	dom.AppendChild(b.itemsEl, it.Element())
	b.ungrouped = append(b.ungrouped, it)

	if len(b.grouped) == 0 {
		b.detachDropdown()
	}
}

// ensureDropdown creates the separator, dropdown and its panel the first
// time an item is grouped.
func (b *GroupingBehavior) ensureDropdown() {
	if b.dropdown != nil {
		return
	}
	sep := dom.NewElement("span")
	dom.SetAttr(sep, "class", "grouped-separator")
	dom.SetAttr(sep, "style", "width: 1")
	dom.AppendChild(sep, dom.NewText("|"))
	b.separator = sep

	dd := dom.NewElement("button")
	dom.SetAttr(dd, "class", "grouped-dropdown")
	dom.SetAttr(dd, "data-name", GroupedDropdownName)
	dom.SetAttr(dd, "style", "width: 3")
	dom.AppendChild(dd, dom.NewText("..."))

	b.panel = dom.NewElement("div")
	dom.SetAttr(b.panel, "class", "grouped-panel")
	dom.AppendChild(dd, b.panel)

	b.dropdown = &dropdownProxy{el: dd}
}

// attachDropdown ensures the separator and dropdown are in the toolbar.
func (b *GroupingBehavior) attachDropdown() {
	if b.separator.Parent == nil {
		dom.AppendChild(b.el, b.separator)
	}
	if b.dropdown.el.Parent == nil {
		dom.AppendChild(b.el, b.dropdown.el)
	}
}

// detachDropdown removes the separator and dropdown from the toolbar.
func (b *GroupingBehavior) detachDropdown() {
	if b.separator != nil && b.separator.Parent != nil {
		dom.RemoveChild(b.el, b.separator)
	}
	if b.dropdown != nil && b.dropdown.el.Parent != nil {
		dom.RemoveChild(b.el, b.dropdown.el)
	}
}

func insertItem(items []Item, index int, it Item) []Item {
	items = append(items, nil)
	copy(items[index+1:], items[index:])
	items[index] = it
	return items
}
