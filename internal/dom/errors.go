package dom

import "errors"

// Sentinel errors for DOM mutation.
var (
	// ErrNilNode is returned when a nil node is passed to a mutator.
	ErrNilNode = errors.New("dom node cannot be nil")

	// ErrIndexOutOfRange is returned for an index outside the child range.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrNotAChild is returned when removing a node from a non-parent.
	ErrNotAChild = errors.New("node is not a child of the given parent")
)
