package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderEventPublisher publishes committed order changes to interested
// subscribers. Publish is called strictly after the conditional write
// committed; a rejected write never produces an event.
//
// Delivery is at-least-once and unordered across independent orders, but
// causally ordered per order: an implementation must never hand a subscriber
// an event carrying a lower version than one it already delivered for the
// same order.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.ChangedEvent)
}

// OrderEventSubscription is one subscriber's live feed of order changes.
// When the subscription lags too far behind, the bus closes the Events
// channel instead of blocking publishers; the subscriber must then re-derive
// current state with a fresh read, exactly as a reconnecting client would.
// No events are retained or replayed for closed subscriptions.
type OrderEventSubscription interface {
	// Events returns the channel the subscriber receives change events on.
	// The channel is closed when the subscription is cancelled or evicted.
	Events() <-chan order.ChangedEvent

	// Close cancels the subscription and releases its resources.
	// Safe to call multiple times.
	Close()
}

// OrderEventBus is a publisher that also accepts subscribers.
type OrderEventBus interface {
	OrderEventPublisher

	// Subscribe registers a new subscriber with the given channel buffer size.
	Subscribe(buffer int) OrderEventSubscription
}
