package driver

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver known to the engine. It is the identity
// the claim coordinator and session views key on; authentication itself is an
// external concern, the engine only stores the stable projection.
//
// Business rules:
//   - Driver must have a valid UUID and a non-empty name
//   - The phone number is optional contact metadata
type Driver struct {
	// id uniquely identifies the driver; matches the identity provider's subject
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// phone is the driver's contact number, possibly empty
	phone string
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified parameters.
// This is the only way to create a valid Driver instance.
//
// Parameters:
//   - id: Unique identifier for the driver (must be a valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Optional contact number
//
// Returns the created driver, or a validation error if a parameter is invalid.
func NewDriver(id kernel.UUID, name string, phone string) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Driver{
		id:    id,
		name:  name,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Driver instance was properly constructed through NewDriver.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's human-readable name.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the driver's contact number, possibly empty.
func (d *Driver) Phone() string {
	return d.phone
}
