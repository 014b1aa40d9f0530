// Package messaging implements the change-notification contract: exactly
// one notification per committed mutation, fanned out to in-process
// subscribers and optionally to a redis channel for external views.
package messaging

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/billfold/backend/internal/application/adapter"
)

// Event describes a committed mutation.
type Event struct {
	Aggregate string    `json:"aggregate"`
	ID        uuid.UUID `json:"id"`
}

// Bus is an in-process change notifier with subscriber fan-out.
// Subscribers are invoked synchronously in subscription order.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewBus creates a new in-process notification bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all future change notifications.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// NotifyChanged implements adapter.ChangeNotifier.
func (b *Bus) NotifyChanged(_ context.Context, aggregate string, id uuid.UUID) {
	b.mu.RLock()
	subs := make([]func(Event), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	event := Event{Aggregate: aggregate, ID: id}
	for _, fn := range subs {
		fn(event)
	}
}

// MultiNotifier fans a notification out to several notifiers.
type MultiNotifier []adapter.ChangeNotifier

// NotifyChanged implements adapter.ChangeNotifier.
func (m MultiNotifier) NotifyChanged(ctx context.Context, aggregate string, id uuid.UUID) {
	for _, n := range m {
		n.NotifyChanged(ctx, aggregate, id)
	}
}
