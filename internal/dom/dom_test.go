package dom

import (
	"testing"

	"golang.org/x/net/html"
)

func TestInsertChildAt(t *testing.T) {
	parent := NewElement("div")
	a := NewText("a")
	b := NewText("b")
	c := NewText("c")

	if err := AppendChild(parent, a); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := AppendChild(parent, c); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := InsertChildAt(parent, b, 1); err != nil {
		t.Fatalf("InsertChildAt: %v", err)
	}

	got, err := Serialize(parent)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if got != "<div>abc</div>" {
		t.Errorf("Serialize = %q, want <div>abc</div>", got)
	}
	if ChildIndex(parent, b) != 1 {
		t.Errorf("ChildIndex(b) = %d, want 1", ChildIndex(parent, b))
	}
}

func TestInsertChildAtMoves(t *testing.T) {
	first := NewElement("div")
	second := NewElement("div")
	child := NewText("x")

	if err := AppendChild(first, child); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := InsertChildAt(second, child, 0); err != nil {
		t.Fatalf("InsertChildAt: %v", err)
	}

	if ChildCount(first) != 0 {
		t.Error("moved child should leave old parent")
	}
	if child.Parent != second {
		t.Error("moved child should have new parent")
	}
}

func TestInsertChildAtBounds(t *testing.T) {
	parent := NewElement("div")

	if err := InsertChildAt(parent, NewText("x"), 1); err != ErrIndexOutOfRange {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
	if err := InsertChildAt(parent, nil, 0); err != ErrNilNode {
		t.Errorf("err = %v, want ErrNilNode", err)
	}
}

func TestInsertChildAtBoundsKeepsChildAttached(t *testing.T) {
	parent := NewElement("div")
	child := NewText("x")
	if err := AppendChild(parent, child); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}

	count := 0
	reg := Observe(parent, CallbackFunc(func(Record) { count++ }))
	defer Unobserve(reg)

	target := NewElement("div")
	if err := InsertChildAt(target, child, 1); err != ErrIndexOutOfRange {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}

	if child.Parent != parent {
		t.Error("failed insert should leave the child attached")
	}
	if count != 0 {
		t.Errorf("failed insert delivered %d records, want 0", count)
	}
}

func TestInsertChildAtSameParentMoveToEnd(t *testing.T) {
	parent := NewElement("div")
	a := NewText("a")
	b := NewText("b")
	AppendChild(parent, a)
	AppendChild(parent, b)

	// The moving child vacates a slot, so index 1 is the end.
	if err := InsertChildAt(parent, a, 1); err != nil {
		t.Fatalf("InsertChildAt: %v", err)
	}
	if got, _ := Serialize(parent); got != "<div>ba</div>" {
		t.Errorf("Serialize = %q, want <div>ba</div>", got)
	}

	if err := InsertChildAt(parent, a, 2); err != ErrIndexOutOfRange {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewElement("div")
	a := NewText("a")
	b := NewText("b")
	AppendChild(parent, a)
	AppendChild(parent, b)

	removed, err := RemoveChildAt(parent, 0)
	if err != nil {
		t.Fatalf("RemoveChildAt: %v", err)
	}
	if removed != a {
		t.Error("RemoveChildAt(0) should return the first child")
	}
	if ChildCount(parent) != 1 || parent.FirstChild != b {
		t.Error("remaining child should be b")
	}

	if _, err := RemoveChildAt(parent, 5); err != ErrIndexOutOfRange {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemovalNotifiesBeforeDetach(t *testing.T) {
	parent := NewElement("div")
	AppendChild(parent, NewText("a"))
	AppendChild(parent, NewText("b"))
	AppendChild(parent, NewText("c"))

	// Every removal path reports while the children are still linked.
	attached := 0
	reg := Observe(parent, CallbackFunc(func(r Record) {
		for _, n := range r.RemovedNodes {
			if n.Parent == parent {
				attached++
			}
		}
	}))
	defer Unobserve(reg)

	if _, err := RemoveChildAt(parent, 2); err != nil {
		t.Fatalf("RemoveChildAt: %v", err)
	}
	RemoveAllChildren(parent)

	if attached != 3 {
		t.Errorf("observed %d still-attached removals, want 3", attached)
	}
	if ChildCount(parent) != 0 {
		t.Errorf("ChildCount = %d, want 0", ChildCount(parent))
	}
}

func TestAttrOps(t *testing.T) {
	n := NewElement("a")

	SetAttr(n, "href", "https://example.com")
	SetAttr(n, "class", "link")
	SetAttr(n, "href", "https://example.org")

	if v, ok := GetAttr(n, "href"); !ok || v != "https://example.org" {
		t.Errorf("GetAttr(href) = %q, %v", v, ok)
	}
	names := AttrNames(n)
	if len(names) != 2 || names[0] != "href" || names[1] != "class" {
		t.Errorf("AttrNames = %v, want [href class]", names)
	}

	if !RemoveAttr(n, "class") {
		t.Error("RemoveAttr(class) should report true")
	}
	if RemoveAttr(n, "class") {
		t.Error("second RemoveAttr(class) should report false")
	}
	if _, ok := GetAttr(n, "class"); ok {
		t.Error("class attribute should be gone")
	}
}

func TestMutationRecords(t *testing.T) {
	root := NewElement("div")

	var records []Record
	reg := Observe(root, CallbackFunc(func(r Record) { records = append(records, r) }))
	defer Unobserve(reg)

	child := NewElement("p")
	if err := AppendChild(root, child); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	SetAttr(child, "class", "x")
	text := NewText("hi")
	if err := AppendChild(child, text); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	SetTextData(text, "bye")
	if _, err := RemoveChildAt(root, 0); err != nil {
		t.Fatalf("RemoveChildAt: %v", err)
	}

	wantKinds := []RecordKind{
		ChildListMutation,
		AttributeMutation,
		ChildListMutation,
		CharacterDataMutation,
		ChildListMutation,
	}
	if len(records) != len(wantKinds) {
		t.Fatalf("got %d records, want %d", len(records), len(wantKinds))
	}
	for i, k := range wantKinds {
		if records[i].Kind != k {
			t.Errorf("record[%d].Kind = %v, want %v", i, records[i].Kind, k)
		}
	}

	if records[3].OldValue != "hi" {
		t.Errorf("character data OldValue = %q, want hi", records[3].OldValue)
	}
	if len(records[4].RemovedNodes) != 1 || records[4].RemovedNodes[0] != child {
		t.Error("removal record should list the removed child")
	}
}

func TestUnobserveStopsDelivery(t *testing.T) {
	root := NewElement("div")

	count := 0
	reg := Observe(root, CallbackFunc(func(Record) { count++ }))

	AppendChild(root, NewText("a"))
	Unobserve(reg)
	AppendChild(root, NewText("b"))

	if count != 1 {
		t.Errorf("callback ran %d times, want 1", count)
	}
}

func TestSerializeAndParseFragment(t *testing.T) {
	nodes, err := ParseFragment(`<p class="intro">hello <b>world</b></p>`)
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d top-level nodes, want 1", len(nodes))
	}
	p := nodes[0]
	if p.Type != html.ElementNode || p.Data != "p" {
		t.Fatalf("unexpected node: %v %q", p.Type, p.Data)
	}

	out, err := Serialize(p)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if out != `<p class="intro">hello <b>world</b></p>` {
		t.Errorf("round trip = %q", out)
	}
}

func TestSelection(t *testing.T) {
	sel := NewSelection()
	if _, _, active := sel.Get(); active {
		t.Error("new selection should be inactive")
	}

	n := NewText("abc")
	sel.Set(Caret{Node: n, Offset: 1}, Caret{Node: n, Offset: 1})
	if !sel.IsCollapsed() {
		t.Error("identical anchor/focus should be collapsed")
	}

	sel.Set(Caret{Node: n, Offset: 0}, Caret{Node: n, Offset: 2})
	anchor, focus, active := sel.Get()
	if !active || anchor.Offset != 0 || focus.Offset != 2 {
		t.Errorf("Get = %+v %+v %v", anchor, focus, active)
	}
	if sel.IsCollapsed() {
		t.Error("distinct anchor/focus should not be collapsed")
	}

	sel.Clear()
	if _, _, active := sel.Get(); active {
		t.Error("Clear should deactivate the selection")
	}
}
