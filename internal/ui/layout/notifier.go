package layout

import (
	"sync"

	"github.com/vellum-editor/vellum/internal/event"
)

// ResizeNotifier fans container-width changes out to subscribers. Repeated
// notifications with an unchanged width are dropped, so subscribers only
// see real resizes.
type ResizeNotifier struct {
	mu        sync.Mutex
	lastWidth int
	seen      bool
	mailbox   *event.Mailbox[int]
}

// NewResizeNotifier returns a notifier with no observed width.
func NewResizeNotifier() *ResizeNotifier {
	return &ResizeNotifier{mailbox: event.NewMailbox[int]()}
}

// Subscribe registers a handler for width changes and returns its
// subscription id.
func (r *ResizeNotifier) Subscribe(h func(width int)) (string, error) {
	return r.mailbox.Subscribe(func(w int) { h(w) })
}

// Unsubscribe removes a handler by subscription id.
func (r *ResizeNotifier) Unsubscribe(id string) error {
	return r.mailbox.Unsubscribe(id)
}

// Notify reports a container width. Handlers run synchronously unless the
// width matches the last notified value.
func (r *ResizeNotifier) Notify(width int) {
	r.mu.Lock()
	if r.seen && r.lastWidth == width {
		r.mu.Unlock()
		return
	}
	r.lastWidth = width
	r.seen = true
	r.mu.Unlock()

	r.mailbox.Post(width)
}

// LastWidth returns the last notified width, if any.
func (r *ResizeNotifier) LastWidth() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastWidth, r.seen
}
