package event

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Handler receives records posted to a mailbox.
type Handler[T any] func(record T)

// Mailbox delivers records synchronously to its subscribers in post order.
// The zero value is not usable; create one with NewMailbox.
type Mailbox[T any] struct {
	mu    sync.RWMutex
	order []string
	subs  map[string]Handler[T]

	posted    atomic.Uint64
	delivered atomic.Uint64
}

// NewMailbox creates an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{
		subs: make(map[string]Handler[T]),
	}
}

// Subscribe registers a handler and returns its subscription ID.
func (m *Mailbox[T]) Subscribe(h Handler[T]) (string, error) {
	if h == nil {
		return "", ErrNilHandler
	}

	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[id] = h
	m.order = append(m.order, id)
	return id, nil
}

// Unsubscribe removes the subscription with the given ID.
func (m *Mailbox[T]) Unsubscribe(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subs[id]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(m.subs, id)
	for i, sid := range m.order {
		if sid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Post delivers a record to every subscriber, in subscription order.
// Delivery is synchronous: Post returns after the last handler returns.
func (m *Mailbox[T]) Post(record T) {
	m.mu.RLock()
	handlers := make([]Handler[T], 0, len(m.order))
	for _, id := range m.order {
		handlers = append(handlers, m.subs[id])
	}
	m.mu.RUnlock()

	m.posted.Add(1)
	for _, h := range handlers {
		h(record)
		m.delivered.Add(1)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (m *Mailbox[T]) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

// Stats returns delivery statistics for the mailbox.
func (m *Mailbox[T]) Stats() Stats {
	m.mu.RLock()
	subs := len(m.subs)
	m.mu.RUnlock()

	return Stats{
		Posted:      m.posted.Load(),
		Delivered:   m.delivered.Load(),
		Subscribers: subs,
	}
}

// Stats contains mailbox delivery statistics.
type Stats struct {
	// Posted is the number of records posted.
	Posted uint64

	// Delivered is the number of handler invocations.
	Delivered uint64

	// Subscribers is the number of active subscriptions.
	Subscribers int
}
