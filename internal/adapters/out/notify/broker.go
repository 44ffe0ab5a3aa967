package notify

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Broker fans order change events out to in-process subscribers.
//
// Per-order ordering is enforced with a version high-watermark: an event whose
// version is not strictly greater than the last delivered version for its
// order is dropped. This makes redelivery harmless, so the same event may
// safely arrive both from the local publisher and from the LISTEN connection.
//
// A subscriber that cannot drain its channel is closed rather than blocking
// the rest; slow clients re-subscribe and re-read current state.
type Broker struct {
	mu          sync.Mutex
	subscribers map[*Subscription]struct{}
	lastVersion map[kernel.UUID]int64
	logger      *slog.Logger
}

// NewBroker creates an event broker with no subscribers.
func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		subscribers: make(map[*Subscription]struct{}),
		lastVersion: make(map[kernel.UUID]int64),
		logger:      logger.With("component", "notify_broker"),
	}
}

// Publish delivers the event to all current subscribers.
// Stale events are dropped; lagging subscribers are closed.
func (b *Broker) Publish(ctx context.Context, event order.ChangedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if event.Version <= b.lastVersion[event.OrderID] {
		return
	}

	if event.Status.IsTerminal() {
		// Nothing newer can arrive for this order
		delete(b.lastVersion, event.OrderID)
	} else {
		b.lastVersion[event.OrderID] = event.Version
	}

	for sub := range b.subscribers {
		select {
		case sub.events <- event:
		default:
			b.logger.WarnContext(ctx, "Closing lagging subscriber",
				"order_id", event.OrderID.String(), "version", event.Version)
			b.closeLocked(sub)
		}
	}
}

// Subscribe registers a new subscriber with the given channel buffer.
// The subscriber receives every event published after this call until it
// falls behind or calls Close.
func (b *Broker) Subscribe(buffer int) ports.OrderEventSubscription {
	sub := &Subscription{
		broker: b,
		events: make(chan order.ChangedEvent, buffer),
	}

	b.mu.Lock()
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// closeLocked removes the subscription and closes its channel.
// Callers must hold b.mu.
func (b *Broker) closeLocked(sub *Subscription) {
	if sub.closed {
		return
	}

	sub.closed = true
	delete(b.subscribers, sub)
	close(sub.events)
}

// Subscription is a registered consumer of order change events.
type Subscription struct {
	broker *Broker
	events chan order.ChangedEvent
	closed bool
}

// Events returns the channel events are delivered on.
// The channel is closed when the subscription ends, whether by Close or by
// falling behind.
func (s *Subscription) Events() <-chan order.ChangedEvent {
	return s.events
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()

	s.broker.closeLocked(s)
}
