package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleAssignmentsQueryHandler retrieves in-progress orders whose last
// change is older than the query threshold. Read-only: deciding what to do
// with a stuck delivery is left to operators.
type GetStaleAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleAssignmentsQueryHandler creates a handler for stale assignment queries.
// Requires a GORM database connection for query execution.
func NewGetStaleAssignmentsQueryHandler(db *gorm.DB) GetStaleAssignmentsQueryHandler {
	return GetStaleAssignmentsQueryHandler{db: db}
}

// Handle executes the query to retrieve stuck in-progress orders.
// Results are sorted oldest first.
func (h GetStaleAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleAssignmentsQuery,
) ([]GetStaleAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-query.Threshold())

	stale := make([]GetStaleAssignmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			driver_id,
			status,
			version,
			updated_at
		FROM orders
		WHERE status IN (?, ?) AND updated_at < ?
		ORDER BY updated_at
	`, order.Assigned, order.PickedUp, cutoff).Rows()
	if err != nil {
		return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var staleResp GetStaleAssignmentsQueryResponse
		var id, driverID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&driverID,
			&status,
			&staleResp.Version,
			&staleResp.UpdatedAt,
		)
		if err != nil {
			return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		staleResp.ID = orderID

		orderDriverID, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return nil, idErr
		}
		staleResp.DriverID = orderDriverID

		staleResp.Status = order.Status(status)

		stale = append(stale, staleResp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStoreUnavailableErrorWithCause("orders", err)
	}

	return stale, nil
}
