package render

import "errors"

// Sentinel errors for the renderer.
var (
	// ErrKindMismatch is returned when a dirty entry's kind does not match
	// its node variant.
	ErrKindMismatch = errors.New("change kind does not match node type")

	// ErrUnknownKind is returned for an unrecognized change kind.
	ErrUnknownKind = errors.New("unknown change kind")
)
