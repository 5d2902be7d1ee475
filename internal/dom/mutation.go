package dom

import (
	"sync"

	"golang.org/x/net/html"
)

// RecordKind identifies the kind of a mutation record.
type RecordKind uint8

const (
	// ChildListMutation indicates children were added or removed.
	ChildListMutation RecordKind = iota

	// AttributeMutation indicates an attribute was set or removed.
	AttributeMutation

	// CharacterDataMutation indicates a text node's data changed.
	CharacterDataMutation
)

// String returns the string representation of the record kind.
func (k RecordKind) String() string {
	switch k {
	case ChildListMutation:
		return "childList"
	case AttributeMutation:
		return "attributes"
	case CharacterDataMutation:
		return "characterData"
	default:
		return "unknown"
	}
}

// Record describes one observed DOM mutation.
type Record struct {
	// Kind is the mutation kind.
	Kind RecordKind

	// Target is the mutated node: the parent for child-list mutations,
	// the element for attribute mutations, the text node for data mutations.
	Target *html.Node

	// AddedNodes and RemovedNodes are set for child-list mutations.
	AddedNodes   []*html.Node
	RemovedNodes []*html.Node

	// AttributeName is set for attribute mutations.
	AttributeName string

	// OldValue carries the previous attribute value or text data.
	OldValue string
}

// Callback receives mutation records for an observed root.
type Callback interface {
	HandleMutation(record Record)
}

// CallbackFunc adapts a function to the Callback interface.
type CallbackFunc func(record Record)

// HandleMutation implements Callback.
func (f CallbackFunc) HandleMutation(record Record) { f(record) }

// Registration identifies one observed callback and is required to stop
// observation.
type Registration struct {
	root *html.Node
	cb   Callback
}

// callbacks maps observed roots to their registrations. Mutators deliver a
// record to the callbacks of the mutated node's containing root.
var (
	callbacksMu sync.RWMutex
	callbacks   = make(map[*html.Node][]*Registration)
)

// Observe registers a callback for mutations anywhere under root. The
// returned registration cancels observation when passed to Unobserve.
func Observe(root *html.Node, cb Callback) *Registration {
	if root == nil || cb == nil {
		return nil
	}
	reg := &Registration{root: root, cb: cb}
	callbacksMu.Lock()
	defer callbacksMu.Unlock()
	callbacks[root] = append(callbacks[root], reg)
	return reg
}

// Unobserve removes a previously registered callback. Passing nil is a
// no-op.
func Unobserve(reg *Registration) {
	if reg == nil {
		return
	}
	callbacksMu.Lock()
	defer callbacksMu.Unlock()

	regs := callbacks[reg.root]
	for i, r := range regs {
		if r == reg {
			callbacks[reg.root] = append(regs[:i], regs[i+1:]...)
			break
		}
	}
	if len(callbacks[reg.root]) == 0 {
		delete(callbacks, reg.root)
	}
}

// deliver sends the record to every callback observing the containing root
// of the record's target.
func deliver(record Record) {
	root := Root(record.Target)

	callbacksMu.RLock()
	cbs := make([]Callback, 0, len(callbacks[root]))
	for _, reg := range callbacks[root] {
		cbs = append(cbs, reg.cb)
	}
	callbacksMu.RUnlock()

	for _, cb := range cbs {
		cb.HandleMutation(record)
	}
}

func notifyChildList(parent *html.Node, added, removed []*html.Node) {
	deliver(Record{
		Kind:         ChildListMutation,
		Target:       parent,
		AddedNodes:   added,
		RemovedNodes: removed,
	})
}

func notifyAttribute(n *html.Node, name, oldValue string) {
	deliver(Record{
		Kind:          AttributeMutation,
		Target:        n,
		AttributeName: name,
		OldValue:      oldValue,
	})
}

func notifyCharacterData(n *html.Node, oldValue string) {
	deliver(Record{
		Kind:     CharacterDataMutation,
		Target:   n,
		OldValue: oldValue,
	})
}
