package order

import "fmt"

// PaymentStatus tracks whether the cash for an order has been collected.
// Payment is settled atomically with the deliver transition; the engine only
// tracks the status, never the payment itself.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means the customer has not paid yet. Every order carries
	// this status until it is delivered.
	PaymentPending

	// PaymentCollected means the driver collected payment on delivery.
	// Set only by the deliver transition, together with the Delivered status.
	PaymentCollected
)

// getPaymentStatusStrings returns a map of PaymentStatus values to their
// string representations.
func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:   "Unknown",
		PaymentPending:   "Pending",
		PaymentCollected: "Collected",
	}
}

// Validate checks if the PaymentStatus value is valid.
// Valid statuses are Pending and Collected.
func (p PaymentStatus) Validate() error {
	if p != PaymentPending && p != PaymentCollected {
		return fmt.Errorf("%d is not a valid payment status: %w", p, ErrInvalidTransition)
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// ValidateConsistentWith enforces the settlement invariant: payment is
// Collected if and only if the order is Delivered.
func (p PaymentStatus) ValidateConsistentWith(status Status) error {
	if p == PaymentCollected && status != Delivered {
		return fmt.Errorf("%s order must not have collected payment: %w", status, ErrInvalidTransition)
	}
	if p != PaymentCollected && status == Delivered {
		return fmt.Errorf("%s order must have collected payment: %w", status, ErrInvalidTransition)
	}
	return nil
}
