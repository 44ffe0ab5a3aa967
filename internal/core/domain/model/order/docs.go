// Package order provides domain entities and business logic for the order
// claim and delivery lifecycle. It implements the Order aggregate root with
// lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root managing identity, payload, and lifecycle
//   - Status: A state machine enforcing the Ready -> Assigned -> PickedUp -> Delivered workflow
//   - PaymentStatus: Settlement tracking tied to the terminal transition
//   - ChangedEvent: The notification emitted after a committed transition
//
// Key business rules:
//   - An order carries a driver if and only if it has left the Ready status,
//     and the driver reference is never cleared once set
//   - Only the owning driver may advance an Assigned or PickedUp order
//   - Delivering an order settles payment to Collected within the same mutation
//   - Every accepted transition increments the order's version token, which
//     backs the optimistic-concurrency writes in the coordinator
//
// The package is pure: given an order snapshot and a request it
// deterministically returns the next snapshot or an error, performs no I/O,
// and makes no timing assumptions.
package order
