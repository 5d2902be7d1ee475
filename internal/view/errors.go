package view

import "errors"

// Sentinel errors for view-tree mutations.
var (
	// ErrNilNode is returned when a nil node is passed to a mutation.
	ErrNilNode = errors.New("node cannot be nil")

	// ErrIndexOutOfRange is returned for an index outside the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrCycleDetected is returned when an insert would make a node its own
	// ancestor.
	ErrCycleDetected = errors.New("insertion would create a cycle")
)
