package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetStaleAssignmentsQueryIsNotConstructed = errors.New(
		"GetStaleAssignmentsQuery must be created via NewGetStaleAssignmentsQuery constructor",
	)
	ErrStaleThresholdIsInvalid = errors.New("stale threshold must be positive")
)

// GetStaleAssignmentsQuery finds orders that have been sitting in Assigned or
// PickedUp longer than a threshold. Such orders usually mean a driver went
// silent mid-delivery; the watchdog surfaces them for operators.
type GetStaleAssignmentsQuery struct { //nolint:recvcheck //using for validation
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewGetStaleAssignmentsQuery creates a query for in-progress orders older
// than the given threshold.
func NewGetStaleAssignmentsQuery(threshold time.Duration) (GetStaleAssignmentsQuery, error) {
	staleQuery := GetStaleAssignmentsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := staleQuery.setThreshold(threshold); err != nil {
		return GetStaleAssignmentsQuery{}, err
	}

	return staleQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStaleAssignmentsQueryIsNotConstructed if validation fails.
func (q GetStaleAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleAssignmentsQueryIsNotConstructed)
}

// Threshold returns how long an order may stay in progress before it is
// considered stale.
func (q GetStaleAssignmentsQuery) Threshold() time.Duration {
	return q.threshold
}

func (q *GetStaleAssignmentsQuery) setThreshold(threshold time.Duration) error {
	if threshold <= 0 {
		return ErrStaleThresholdIsInvalid
	}

	q.threshold = threshold
	return nil
}

// GetStaleAssignmentsQueryResponse describes one stuck in-progress order.
type GetStaleAssignmentsQueryResponse struct {
	ID        kernel.UUID
	DriverID  kernel.UUID
	Status    order.Status
	Version   int64
	UpdatedAt time.Time
}
