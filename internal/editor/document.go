// Package editor provides the Document aggregate: the single owner of a
// renderer, a DOM converter, the selection, the named root registry and the
// observer registry. All editing flows through it: writer mutations mark the
// renderer's dirty set via the change mailbox, and Render applies them to
// the bound DOM inside an observer disable/enable bracket.
package editor

import (
	"sync"
	"sync/atomic"

	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
	"github.com/vellum-editor/vellum/internal/event"
	"github.com/vellum-editor/vellum/internal/logging"
	"github.com/vellum-editor/vellum/internal/render"
	"github.com/vellum-editor/vellum/internal/view"
	"github.com/vellum-editor/vellum/internal/view/observer"
)

// Options configures a Document.
type Options struct {
	// Logger receives document and renderer diagnostics. Nil discards.
	Logger *logging.Logger
}

// Document is the aggregate root of the view layer. It owns one renderer,
// one selection, the named root registry and the observer registry.
type Document struct {
	mu        sync.Mutex
	log       *logging.Logger
	renderer  *render.Renderer
	writer    *view.Writer
	selection *view.Selection
	domSel    *dom.Selection
	observers *observer.Registry
	changes   *event.Mailbox[view.Change]
	changeSub string

	roots     map[string]*view.Element
	domRoots  map[string]*html.Node
	rootOrder []string

	rendering atomic.Bool
	destroyed atomic.Bool
}

// New creates an empty document.
func New(opts Options) *Document {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("document")

	d := &Document{
		log:       log,
		writer:    view.NewWriter(),
		selection: view.NewSelection(),
		domSel:    dom.NewSelection(),
		observers: observer.NewRegistry(),
		changes:   event.NewMailbox[view.Change](),
		roots:     make(map[string]*view.Element),
		domRoots:  make(map[string]*html.Node),
	}
	d.renderer = render.NewRenderer(render.NewDomConverter(), d.selection, d.domSel, log)

	// Every change posted by a root's sink lands in the dirty set.
	id, _ := d.changes.Subscribe(func(c view.Change) {
		d.renderer.MarkToSync(c.Kind, c.Node)
	})
	d.changeSub = id
	return d
}

// changeForwarder posts root change notifications into the document's
// mailbox.
type changeForwarder struct{ doc *Document }

func (f changeForwarder) NotifyChange(c view.Change) { f.doc.changes.Post(c) }

// CreateRoot creates and registers a named view root with the given tag.
// A duplicate name is an error.
func (d *Document) CreateRoot(tag, name string) (*view.Element, error) {
	if d.destroyed.Load() {
		return nil, ErrDestroyed
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.roots[name]; ok {
		return nil, ErrRootExists
	}
	root := view.NewElement(tag)
	root.SetChangeSink(changeForwarder{doc: d})
	d.roots[name] = root
	d.rootOrder = append(d.rootOrder, name)
	d.log.Debug("created root %q tag %q", name, tag)
	return root, nil
}

// CreateRootFrom creates a named view root mirroring the tag of an existing
// DOM element and attaches that element as the root's DOM counterpart.
func (d *Document) CreateRootFrom(domEl *html.Node, name string) (*view.Element, error) {
	if domEl == nil {
		return nil, dom.ErrNilNode
	}
	root, err := d.CreateRoot(domEl.Data, name)
	if err != nil {
		return nil, err
	}
	if err := d.AttachDomRoot(domEl, name); err != nil {
		return nil, err
	}
	return root, nil
}

// AttachDomRoot binds an existing DOM element to the previously created
// view root of the same name, marks the root's children dirty so the next
// render fully reconciles it, and attaches every registered observer.
func (d *Document) AttachDomRoot(domEl *html.Node, name string) error {
	if d.destroyed.Load() {
		return ErrDestroyed
	}
	if domEl == nil {
		return dom.ErrNilNode
	}
	d.mu.Lock()
	root, ok := d.roots[name]
	if !ok {
		d.mu.Unlock()
		return ErrNoViewRoot
	}
	if _, attached := d.domRoots[name]; attached {
		d.mu.Unlock()
		return ErrRootExists
	}
	d.domRoots[name] = domEl
	d.mu.Unlock()

	d.renderer.Converter().Bind(root, domEl)
	d.renderer.MarkToSync(view.ChildrenChange, root)
	d.observers.Each(func(_ observer.Type, obs observer.Observer) {
		obs.Observe(domEl, name)
	})
	d.log.Debug("attached dom root %q", name)
	return nil
}

// GetRoot returns the named view root, if any.
func (d *Document) GetRoot(name string) (*view.Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	root, ok := d.roots[name]
	return root, ok
}

// GetDomRoot returns the DOM element attached under the name, if any.
func (d *Document) GetDomRoot(name string) (*html.Node, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.domRoots[name]
	return el, ok
}

// RootNames returns the registered root names in creation order.
func (d *Document) RootNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, len(d.rootOrder))
	copy(names, d.rootOrder)
	return names
}

// AddObserver registers an observer by type. The first registration
// constructs the observer, attaches it to all existing DOM roots and
// enables it; later registrations return the cached instance untouched.
func (d *Document) AddObserver(t observer.Type, construct observer.Constructor) observer.Observer {
	obs, created := d.observers.Add(t, construct)
	if !created {
		return obs
	}

	d.mu.Lock()
	names := make([]string, len(d.rootOrder))
	copy(names, d.rootOrder)
	domRoots := make(map[string]*html.Node, len(d.domRoots))
	for name, el := range d.domRoots {
		domRoots[name] = el
	}
	d.mu.Unlock()

	for _, name := range names {
		if el, ok := domRoots[name]; ok {
			obs.Observe(el, name)
		}
	}
	obs.Enable()
	d.log.Debug("registered observer %s", t)
	return obs
}

// GetObserver returns the registered observer of the given type, if any.
func (d *Document) GetObserver(t observer.Type) (observer.Observer, bool) {
	return d.observers.Get(t)
}

// Writer returns the tree writer used to mutate the document's roots.
func (d *Document) Writer() *view.Writer { return d.writer }

// Selection returns the view-level selection.
func (d *Document) Selection() *view.Selection { return d.selection }

// DOMSelection returns the native selection holder.
func (d *Document) DOMSelection() *dom.Selection { return d.domSel }

// Renderer returns the document's renderer.
func (d *Document) Renderer() *render.Renderer { return d.renderer }

// Changes returns the mailbox carrying root change notifications. External
// components may subscribe alongside the renderer.
func (d *Document) Changes() *event.Mailbox[view.Change] { return d.changes }

// Render applies all pending changes to the bound DOM roots. Observers are
// disabled for the duration of the pass so renderer-driven mutations are
// not misread as user edits, and re-enabled even if reconciliation fails.
// A re-entrant call returns ErrRenderInProgress.
func (d *Document) Render() error {
	if d.destroyed.Load() {
		return ErrDestroyed
	}
	if !d.rendering.CompareAndSwap(false, true) {
		return ErrRenderInProgress
	}
	defer d.rendering.Store(false)

	d.observers.DisableAll()
	defer d.observers.EnableAll()

	if err := d.renderer.Render(); err != nil {
		d.log.Error("render failed: %v", err)
		return err
	}
	return nil
}

// Destroy detaches all observers and unsubscribes the renderer from the
// change mailbox. The document is unusable afterwards.
func (d *Document) Destroy() {
	if !d.destroyed.CompareAndSwap(false, true) {
		return
	}
	d.observers.DisableAll()
	d.observers.DetachAll()
	if d.changeSub != "" {
		d.changes.Unsubscribe(d.changeSub)
	}
	d.log.Debug("document destroyed")
}
