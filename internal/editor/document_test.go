package editor

import (
	"errors"
	"testing"

	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/dom"
	"github.com/vellum-editor/vellum/internal/view"
	"github.com/vellum-editor/vellum/internal/view/observer"
)

func newAttachedDoc(t *testing.T) (*Document, *view.Element, *html.Node) {
	t.Helper()
	doc := New(Options{})
	t.Cleanup(doc.Destroy)

	root, err := doc.CreateRoot("div", "main")
	if err != nil {
		t.Fatalf("CreateRoot: %v", err)
	}
	domRoot := dom.NewElement("div")
	if err := doc.AttachDomRoot(domRoot, "main"); err != nil {
		t.Fatalf("AttachDomRoot: %v", err)
	}
	return doc, root, domRoot
}

func serialize(t *testing.T, n *html.Node) string {
	t.Helper()
	out, err := dom.Serialize(n)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	return out
}

func TestEditRenderCycle(t *testing.T) {
	doc, root, domRoot := newAttachedDoc(t)
	w := doc.Writer()

	para := view.NewElement("p")
	text := view.NewText("hello")
	if err := w.AppendChild(para, text); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	w.SetAttribute(para, "class", "intro")
	if err := w.AppendChild(root, para); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}

	if err := doc.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `<div><p class="intro">hello</p></div>`
	if got := serialize(t, domRoot); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	w.SetText(text, "goodbye")
	if err := doc.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want = `<div><p class="intro">goodbye</p></div>`
	if got := serialize(t, domRoot); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCreateRootDuplicateName(t *testing.T) {
	doc := New(Options{})
	defer doc.Destroy()

	if _, err := doc.CreateRoot("div", "main"); err != nil {
		t.Fatalf("CreateRoot: %v", err)
	}
	if _, err := doc.CreateRoot("section", "main"); !errors.Is(err, ErrRootExists) {
		t.Errorf("duplicate CreateRoot err = %v, want ErrRootExists", err)
	}
}

func TestAttachDomRootWithoutViewRoot(t *testing.T) {
	doc := New(Options{})
	defer doc.Destroy()

	err := doc.AttachDomRoot(dom.NewElement("div"), "main")
	if !errors.Is(err, ErrNoViewRoot) {
		t.Errorf("AttachDomRoot err = %v, want ErrNoViewRoot", err)
	}
}

func TestCreateRootFrom(t *testing.T) {
	doc := New(Options{})
	defer doc.Destroy()

	domRoot := dom.NewElement("section")
	root, err := doc.CreateRootFrom(domRoot, "sidebar")
	if err != nil {
		t.Fatalf("CreateRootFrom: %v", err)
	}
	if root.Name() != "section" {
		t.Errorf("root tag = %q, want section", root.Name())
	}
	if got, ok := doc.GetDomRoot("sidebar"); !ok || got != domRoot {
		t.Error("dom root should be attached under the new name")
	}
}

func TestRootNamesInCreationOrder(t *testing.T) {
	doc := New(Options{})
	defer doc.Destroy()

	for _, name := range []string{"main", "title", "footer"} {
		if _, err := doc.CreateRoot("div", name); err != nil {
			t.Fatalf("CreateRoot(%s): %v", name, err)
		}
	}
	names := doc.RootNames()
	want := []string{"main", "title", "footer"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestAddObserverIdempotent(t *testing.T) {
	doc, _, _ := newAttachedDoc(t)

	calls := 0
	construct := func() observer.Observer {
		calls++
		return observer.NewFocusObserver()
	}
	first := doc.AddObserver(observer.TypeFocus, construct)
	second := doc.AddObserver(observer.TypeFocus, construct)

	if first != second {
		t.Error("AddObserver should return the identical cached instance")
	}
	if calls != 1 {
		t.Errorf("constructor ran %d times, want 1", calls)
	}
	if _, ok := doc.GetObserver(observer.TypeComposition); ok {
		t.Error("GetObserver on an unregistered type should report ok=false")
	}
}

func TestAddObserverEnablesAndAttaches(t *testing.T) {
	doc, root, domRoot := newAttachedDoc(t)

	var seen []string
	doc.AddObserver(observer.TypeMutation, func() observer.Observer {
		return observer.NewMutationObserver(func(rootName string, r dom.Record) {
			seen = append(seen, rootName)
		})
	})

	// Direct DOM mutation stands in for a user edit: it must be observed.
	if err := dom.AppendChild(domRoot, dom.NewText("typed")); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if len(seen) != 1 || seen[0] != "main" {
		t.Fatalf("seen = %v, want [main]", seen)
	}

	// Renderer-driven mutations happen inside the disable bracket and must
	// not be observed.
	if err := doc.Writer().AppendChild(root, view.NewElement("p")); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := doc.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(seen) != 1 {
		t.Errorf("render mutations were observed: seen = %v", seen)
	}

	// The bracket re-enables afterwards.
	if err := dom.AppendChild(domRoot, dom.NewText("more")); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("observer not re-enabled after render: seen = %v", seen)
	}
}

func TestRenderReentrancyRejected(t *testing.T) {
	doc, root, _ := newAttachedDoc(t)

	var reentrant error
	doc.AddObserver(observer.TypeFocus, func() observer.Observer {
		return &renderOnDisable{doc: doc, err: &reentrant}
	})

	if err := doc.Writer().AppendChild(root, view.NewElement("p")); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := doc.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !errors.Is(reentrant, ErrRenderInProgress) {
		t.Errorf("re-entrant Render err = %v, want ErrRenderInProgress", reentrant)
	}
}

// renderOnDisable calls Render from inside the render pass's disable phase.
type renderOnDisable struct {
	doc *Document
	err *error
}

func (o *renderOnDisable) Observe(*html.Node, string) {}
func (o *renderOnDisable) Enable()                    {}
func (o *renderOnDisable) Disable()                   { *o.err = o.doc.Render() }

func TestRenderBracketSurvivesFailure(t *testing.T) {
	doc, _, _ := newAttachedDoc(t)

	obs := doc.AddObserver(observer.TypeComposition, func() observer.Observer {
		return observer.NewCompositionObserver()
	}).(*observer.CompositionObserver)

	// A text mark on an element node cannot be applied and fails the pass.
	doc.Renderer().MarkToSync(view.TextChange, view.NewElement("p"))
	if err := doc.Render(); err == nil {
		t.Fatal("Render should fail on a mismatched dirty entry")
	}

	obs.BeginComposition("main")
	if !obs.IsComposing("main") {
		t.Error("observer should be re-enabled after a failed render")
	}
}

func TestSelectionRestoredAfterRender(t *testing.T) {
	doc, root, _ := newAttachedDoc(t)
	w := doc.Writer()

	text := view.NewText("hello")
	if err := w.AppendChild(root, text); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	doc.Selection().SetToPosition(view.Position{Node: text, Offset: 3})

	if err := doc.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	anchor, focus, active := doc.DOMSelection().Get()
	if !active {
		t.Fatal("native selection should be active after render")
	}
	domText, ok := doc.Renderer().Converter().ViewToDOM(text)
	if !ok {
		t.Fatal("text node should be bound after render")
	}
	if anchor.Node != domText || anchor.Offset != 3 {
		t.Errorf("anchor = %v@%d, want bound text@3", anchor.Node, anchor.Offset)
	}
	if focus != anchor {
		t.Error("collapsed selection should have focus == anchor")
	}
}

func TestDestroyDetachesObservers(t *testing.T) {
	doc, _, domRoot := newAttachedDoc(t)

	count := 0
	doc.AddObserver(observer.TypeMutation, func() observer.Observer {
		return observer.NewMutationObserver(func(string, dom.Record) { count++ })
	})

	dom.AppendChild(domRoot, dom.NewText("a"))
	doc.Destroy()
	dom.AppendChild(domRoot, dom.NewText("b"))

	if count != 1 {
		t.Errorf("observer fired %d times, want 1", count)
	}
	if err := doc.Render(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Render after Destroy err = %v, want ErrDestroyed", err)
	}
}
