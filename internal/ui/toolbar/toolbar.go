// Package toolbar implements the editor toolbar: an ordered item collection
// rendered into a DOM subtree, with a layout behavior chosen once at
// construction. The static behavior displays items one-to-one; the grouping
// behavior moves items that do not fit the container into a lazily created
// dropdown and back as the container resizes.
package toolbar

import (
	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
	"github.com/vellum-editor/vellum/internal/logging"
	"github.com/vellum-editor/vellum/internal/ui/layout"
)

// Behavior is the layout strategy of a toolbar.
type Behavior interface {
	// InsertItem places an item at the given logical index.
	InsertItem(index int, it Item) error

	// RemoveItem removes the named item, reporting whether it was present.
	RemoveItem(name string) bool

	// Items returns all items in logical order.
	Items() []Item

	// Focusables returns the items participating in focus cycling.
	Focusables() []Item

	// ContainerResized reports a new container content width in cells.
	ContainerResized(width int)
}

// Options configures a toolbar.
type Options struct {
	// GroupWhenFull selects the dynamic grouping behavior instead of the
	// static one.
	GroupWhenFull bool

	// Vertical lays the toolbar out as a column. Vertical toolbars never
	// group.
	Vertical bool

	// Direction is the text direction used for overflow measurement.
	Direction layout.Direction

	// Measurer supplies geometry. Nil creates a private one.
	Measurer *layout.Measurer

	// Logger receives toolbar diagnostics. Nil discards.
	Logger *logging.Logger
}

// Toolbar is the toolbar view. All structural changes go through it so the
// focus cycler stays consistent with the behavior's focusable set.
type Toolbar struct {
	el       *html.Node
	itemsEl  *html.Node
	behavior Behavior
	focus    *FocusCycler
	log      *logging.Logger
}

// New creates an empty toolbar with the behavior selected by the options.
func New(opts Options) *Toolbar {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("toolbar")

	el := dom.NewElement("div")
	class := "toolbar"
	if opts.Vertical {
		class += " vertical"
	}
	dom.SetAttr(el, "class", class)
	dom.SetAttr(el, "style", "padding-left:1; padding-right:1")

	itemsEl := dom.NewElement("div")
	dom.SetAttr(itemsEl, "class", "toolbar-items")
	dom.SetAttr(itemsEl, "style", "gap:1")
	dom.AppendChild(el, itemsEl)

	t := &Toolbar{
		el:      el,
		itemsEl: itemsEl,
		focus:   NewFocusCycler(),
		log:     log,
	}
	if opts.GroupWhenFull && !opts.Vertical {
		m := opts.Measurer
		if m == nil {
			m = layout.NewMeasurer()
		}
		t.behavior = newGroupingBehavior(el, itemsEl, m, opts.Direction, log)
	} else {
		t.behavior = newStaticBehavior(itemsEl, opts.Vertical)
	}
	return t
}

// Element returns the toolbar's DOM element.
func (t *Toolbar) Element() *html.Node { return t.el }

// Behavior returns the active layout behavior.
func (t *Toolbar) Behavior() Behavior { return t.behavior }

// Focus returns the toolbar's focus cycler.
func (t *Toolbar) Focus() *FocusCycler { return t.focus }

// AddItem appends an item.
func (t *Toolbar) AddItem(it Item) error {
	return t.InsertItem(len(t.behavior.Items()), it)
}

// InsertItem places an item at the given logical index.
func (t *Toolbar) InsertItem(index int, it Item) error {
	if err := t.behavior.InsertItem(index, it); err != nil {
		return err
	}
	t.refreshFocus()
	return nil
}

// RemoveItem removes the named item, reporting whether it was present.
func (t *Toolbar) RemoveItem(name string) bool {
	removed := t.behavior.RemoveItem(name)
	if removed {
		t.refreshFocus()
	}
	return removed
}

// Items returns all items in logical order.
func (t *Toolbar) Items() []Item { return t.behavior.Items() }

// ContainerResized reports a new container content width to the behavior.
func (t *Toolbar) ContainerResized(width int) {
	t.behavior.ContainerResized(width)
	t.refreshFocus()
}

// FillFromConfig builds the toolbar from an ordered list of item names.
// The "|" sentinel produces a separator; names the factory does not
// recognize are skipped with a warning.
func (t *Toolbar) FillFromConfig(names []string, factory Factory) {
	for _, name := range names {
		if name == SeparatorName {
			if err := t.AddItem(NewSeparator()); err != nil {
				t.log.Warn("adding separator: %v", err)
			}
			continue
		}
		it, ok := factory.Create(name)
		if !ok {
			t.log.Warn("unknown toolbar item %q, skipping", name)
			continue
		}
		if err := t.AddItem(it); err != nil {
			t.log.Warn("adding toolbar item %q: %v", name, err)
		}
	}
}

func (t *Toolbar) refreshFocus() {
	t.focus.SetItems(t.behavior.Focusables())
}
