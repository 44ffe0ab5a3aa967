package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// MoneyCurrencyLength is the required length of a currency code (ISO 4217).
const MoneyCurrencyLength = 3

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created using the NewMoney constructor to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money represents a monetary amount in minor units (e.g. cents) together with
// its currency code. Money is an immutable value object; the engine treats it
// as opaque payload and never performs arithmetic on it.
//
// The zero value of Money is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	total, err := kernel.NewMoney(12550, "MAD")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Total: %s", total) // Output: 12550 MAD
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a new Money value with the specified amount and currency.
// The amount is expressed in minor units and must not be negative. The
// currency must be a three-letter uppercase code.
//
// Returns:
//   - Money: A valid money instance
//   - error: Validation error if the amount is negative or the currency is malformed
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is negative", amount))
	}

	if len(currency) != MoneyCurrencyLength {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency is invalid",
			fmt.Errorf("%q is not a three-letter currency code", currency))
	}

	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return Money{}, errs.NewValueIsInvalidErrorWithCause("currency is invalid",
				fmt.Errorf("%q contains characters outside A-Z", currency))
		}
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Amount returns the monetary amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the three-letter currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two Money values. They are equal when both the amount and
// the currency match.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// String returns a human-readable representation, e.g. "12550 MAD".
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

// Validate checks that the Money value was created through NewMoney.
// Returns ErrMoneyIsNotConstructed for zero-value instances.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
