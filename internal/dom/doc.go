// Package dom wraps golang.org/x/net/html node trees as the native DOM the
// renderer patches.
//
// All structural mutation goes through this package's functions rather than
// through the html.Node linked-list fields directly. That is what makes
// mutation observation possible: every mutator walks to the containing root
// and delivers a Record to the callbacks observing that root, mirroring the
// browser MutationObserver contract (child list, attributes, character data).
//
// The package also carries the native selection state (Selection): a volatile
// anchor/focus pair over DOM nodes that the renderer re-applies after any
// mutation overlapping the view selection.
package dom
