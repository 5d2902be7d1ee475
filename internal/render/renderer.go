package render

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
	"github.com/vellum-editor/vellum/internal/logging"
	"github.com/vellum-editor/vellum/internal/render/dirty"
	"github.com/vellum-editor/vellum/internal/view"
)

// Renderer applies pending view-tree changes to the bound DOM and restores
// the native selection afterwards. It does not own the view selection or the
// native selection holder; both are shared with the document aggregate.
type Renderer struct {
	converter    *DomConverter
	set          *dirty.Set
	selection    *view.Selection
	domSelection *dom.Selection
	log          *logging.Logger

	passes atomic.Uint64
}

// NewRenderer creates a renderer over the given converter and selection state.
func NewRenderer(converter *DomConverter, selection *view.Selection, domSelection *dom.Selection, log *logging.Logger) *Renderer {
	if log == nil {
		log = logging.Discard()
	}
	return &Renderer{
		converter:    converter,
		set:          dirty.NewSet(),
		selection:    selection,
		domSelection: domSelection,
		log:          log.WithComponent("renderer"),
	}
}

// Converter returns the renderer's DOM converter.
func (r *Renderer) Converter() *DomConverter { return r.converter }

// DirtySet exposes the pending-change set. The document forwards view change
// records here; tests inspect it.
func (r *Renderer) DirtySet() *dirty.Set { return r.set }

// MarkToSync records a pending change for the next render pass.
func (r *Renderer) MarkToSync(kind view.ChangeKind, node view.Node) {
	r.set.Mark(kind, node)
}

// Passes returns the number of completed render passes.
func (r *Renderer) Passes() uint64 { return r.passes.Load() }

// Render applies every pending entry to the DOM, then restores the native
// selection if any applied entry overlapped it. The dirty set is cleared
// only after all entries applied; on error the set is left intact so the
// pass can be retried, and re-applying an entry is a no-op.
func (r *Renderer) Render() error {
	entries := r.set.Snapshot()
	if len(entries) == 0 {
		return nil
	}

	selectionTouched := false
	for _, e := range entries {
		if r.selection != nil && r.selection.OverlapsNode(e.Node) {
			selectionTouched = true
		}
		if err := r.apply(e); err != nil {
			return fmt.Errorf("applying %s change: %w", e.Kind, err)
		}
	}

	if selectionTouched {
		r.restoreSelection()
	}

	r.set.Clear()
	r.passes.Add(1)
	return nil
}

// apply dispatches one dirty entry. Entries whose node is not bound (and has
// no bound ancestor being reconciled) are skipped: they belong to roots that
// have no DOM attachment yet and will be fully synced on first attachment.
func (r *Renderer) apply(e dirty.Entry) error {
	switch e.Kind {
	case view.TextChange:
		t, ok := e.Node.(*view.Text)
		if !ok {
			return fmt.Errorf("%w: text mark on %T", ErrKindMismatch, e.Node)
		}
		r.syncText(t)
		return nil
	case view.AttributesChange:
		el, ok := e.Node.(*view.Element)
		if !ok {
			return fmt.Errorf("%w: attributes mark on %T", ErrKindMismatch, e.Node)
		}
		r.syncAttributes(el)
		return nil
	case view.ChildrenChange:
		el, ok := e.Node.(*view.Element)
		if !ok {
			return fmt.Errorf("%w: children mark on %T", ErrKindMismatch, e.Node)
		}
		return r.syncSubtree(el)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, e.Kind)
	}
}

// syncText patches only the data of the bound DOM text node.
func (r *Renderer) syncText(t *view.Text) {
	d, ok := r.converter.ViewToDOM(t)
	if !ok {
		return
	}
	dom.SetTextData(d, t.Data())
}

// syncAttributes diffs the view element's attributes against the bound DOM
// element and touches only the differing entries.
func (r *Renderer) syncAttributes(el *view.Element) {
	d, ok := r.converter.ViewToDOM(el)
	if !ok {
		return
	}

	want := el.Attributes()
	wanted := make(map[string]string, len(want))
	for _, a := range want {
		wanted[a.Name] = a.Value
		if cur, ok := dom.GetAttr(d, a.Name); !ok || cur != a.Value {
			dom.SetAttr(d, a.Name, a.Value)
		}
	}
	for _, name := range dom.AttrNames(d) {
		if _, ok := wanted[name]; !ok {
			dom.RemoveAttr(d, name)
		}
	}
}

// syncSubtree reconciles the child list of el against the bound DOM element
// and descends into the kept children, bringing the whole subtree into
// agreement. Already-synchronized levels produce zero mutations.
func (r *Renderer) syncSubtree(el *view.Element) error {
	d, ok := r.converter.ViewToDOM(el)
	if !ok {
		return nil
	}
	if err := r.syncChildren(el, d); err != nil {
		return err
	}

	for _, child := range el.Children() {
		switch n := child.(type) {
		case *view.Element:
			r.syncAttributes(n)
			if err := r.syncSubtree(n); err != nil {
				return err
			}
		case *view.Text:
			r.syncText(n)
		}
	}
	return nil
}

// syncChildren makes the DOM child list of d match el's children. Bound DOM
// nodes are kept and moved; DOM children with no binding in the expected
// list are removed; unbound view children are converted fresh. On first
// attachment this degenerates to clearing the element and populating it
// from the view tree, which is the required full replace.
func (r *Renderer) syncChildren(el *view.Element, d *html.Node) error {
	viewChildren := el.Children()
	expected := make([]*html.Node, len(viewChildren))
	keep := make(map[*html.Node]bool, len(viewChildren))
	for i, c := range viewChildren {
		expected[i] = r.converter.Convert(c)
		keep[expected[i]] = true
	}

	// Drop DOM children that have no place in the expected list. A binding
	// is released only when its view node left the tree for good; a node
	// that moved parents keeps its binding so the new parent's pass reuses
	// the same DOM node instead of rebuilding it.
	for _, c := range dom.Children(d) {
		if !keep[c] {
			if err := dom.RemoveChild(d, c); err != nil {
				return err
			}
			if v, ok := r.converter.DOMToView(c); ok && v.Parent() == nil {
				r.converter.Unbind(v)
			}
		}
	}

	// Walk the expected list; everything before index i is already correct,
	// so a misplaced node can only be detached or located further right, and
	// remove-then-insert at i cannot disturb the settled prefix.
	for i, want := range expected {
		if dom.ChildAt(d, i) == want {
			continue
		}
		if err := dom.InsertChildAt(d, want, i); err != nil {
			return err
		}
	}
	return nil
}

// restoreSelection re-applies the native selection from the view selection,
// mapped through the converter. An empty or unmappable view selection clears
// the native one.
func (r *Renderer) restoreSelection() {
	if r.selection == nil || r.domSelection == nil {
		return
	}

	anchor, ok := r.selection.Anchor()
	if !ok {
		r.domSelection.Clear()
		return
	}
	focus, _ := r.selection.Focus()

	domAnchor, okA := r.converter.ViewPositionToDOM(anchor)
	domFocus, okF := r.converter.ViewPositionToDOM(focus)
	if !okA || !okF {
		r.log.Warn("selection position has no DOM binding, clearing native selection")
		r.domSelection.Clear()
		return
	}
	r.domSelection.Set(domAnchor, domFocus)
}
