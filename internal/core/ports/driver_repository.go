// Package ports defines repository and messaging interfaces for the dispatch
// engine. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
// Drivers are identity projections: written once on registration, read to
// authorize claims.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	// The driver must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	// Returns an error unwrapping to errs.ErrObjectNotFound when the driver
	// is not registered.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)
}
