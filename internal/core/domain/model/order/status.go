package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the unwrap target for every rejected lifecycle
// transition. Callers classify rejections with errors.Is.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError describes a rejected lifecycle transition.
// The order is left unmodified when this error is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the delivery workflow.
//
// State transitions:
//
//	Ready ──claim──> Assigned ──pickup──> PickedUp ──deliver──> Delivered
//
// No edge skips a state, no edge goes backward, and Delivered is terminal.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Ready is the initial status of an order placed by the store-facing flow.
	// Orders in this status form the available pool and carry no driver.
	Ready

	// Assigned indicates a driver has claimed the order but does not yet
	// physically hold it.
	Assigned

	// PickedUp indicates the claiming driver has collected the order from the
	// store and is en route to the customer.
	PickedUp

	// Delivered indicates the order reached the customer and payment was
	// collected. This is a terminal state with no further transitions.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Ready:     "Ready",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		Delivered: "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Ready:     "Ready",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		Delivered: "Delivered",
	}
}

// StatusFromString parses a status from its string representation.
// Used when reconstructing orders from persistence or external requests.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%q is not a valid status: %w", s, ErrInvalidTransition)
}

// Validate checks if the Status value is valid.
// Valid statuses are: Ready, Assigned, PickedUp, Delivered.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid status: %w", s, ErrInvalidTransition)
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any Status value,
// including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// IsActive reports whether the status represents an in-flight delivery owned
// by a driver. At most one active order may exist per driver.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment: an order carries a driver if and only if it has left the
// Ready status.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s == Ready {
		return fmt.Errorf("%s order must not have a driver: %w", s, ErrInvalidTransition)
	}
	if !hasDriver && s != Ready && s != Unknown {
		return fmt.Errorf("%s order must have a driver: %w", s, ErrInvalidTransition)
	}
	return nil
}

// Claim transitions the status to Assigned.
//
// Valid transitions:
//   - Ready -> Assigned (a driver claims the order)
//
// Any other starting status, including a repeated claim on an already
// Assigned order, is rejected with an InvalidTransitionError.
func (s Status) Claim() (Status, error) {
	if s != Ready {
		return Unknown, NewInvalidTransitionError(s, Assigned)
	}
	return Assigned, nil
}

// Pickup transitions the status to PickedUp.
//
// Valid transitions:
//   - Assigned -> PickedUp (the claiming driver collects the order)
//
// Skipping ahead from Ready or repeating the pickup is rejected with an
// InvalidTransitionError.
func (s Status) Pickup() (Status, error) {
	if s != Assigned {
		return Unknown, NewInvalidTransitionError(s, PickedUp)
	}
	return PickedUp, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - PickedUp -> Delivered (the order is handed to the customer)
//
// Delivered is terminal; any further transition attempt on it fails.
func (s Status) Deliver() (Status, error) {
	if s != PickedUp {
		return Unknown, NewInvalidTransitionError(s, Delivered)
	}
	return Delivered, nil
}
