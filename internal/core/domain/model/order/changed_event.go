package order

import "dispatch/internal/core/domain/model/kernel"

// ChangedEvent is the notification published after a committed order mutation.
// It carries just enough of the new state for subscribers to repartition their
// views; clients needing the full record re-read it.
//
// Events for independent orders are unordered, but per order the Version field
// establishes a total order: a subscriber must never apply an event whose
// version is lower than one it has already seen for the same order.
type ChangedEvent struct {
	OrderID       kernel.UUID
	Status        Status
	PaymentStatus PaymentStatus
	DriverID      *kernel.UUID
	Version       int64
}

// NewChangedEvent captures the current state of an order as a ChangedEvent.
func NewChangedEvent(o *Order) ChangedEvent {
	return ChangedEvent{
		OrderID:       o.ID(),
		Status:        o.Status(),
		PaymentStatus: o.PaymentStatus(),
		DriverID:      o.Driver(),
		Version:       o.Version(),
	}
}
