package event

import "errors"

// Sentinel errors for the mailbox.
var (
	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown ID.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
