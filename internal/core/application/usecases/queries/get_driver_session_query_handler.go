package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverSessionQueryHandler assembles a driver's session view.
// Composes the active order and available pool queries behind a single
// round trip from the client's point of view. The driver row is read first
// so an unknown driver fails fast with a not-found error instead of an
// empty session.
type GetDriverSessionQueryHandler struct {
	db            *gorm.DB
	activeHandler GetActiveOrderQueryHandler
	readyHandler  GetReadyOrdersQueryHandler
}

// NewGetDriverSessionQueryHandler creates a handler for driver session queries.
// Requires a GORM database connection for query execution.
func NewGetDriverSessionQueryHandler(db *gorm.DB) GetDriverSessionQueryHandler {
	return GetDriverSessionQueryHandler{
		db:            db,
		activeHandler: NewGetActiveOrderQueryHandler(db),
		readyHandler:  NewGetReadyOrdersQueryHandler(db),
	}
}

// Handle executes the session query for the given driver.
// Returns errs.ErrObjectNotFound when the driver is not registered.
func (h GetDriverSessionQueryHandler) Handle(
	ctx context.Context,
	query GetDriverSessionQuery,
) (GetDriverSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDriverSessionQueryResponse{}, err
	}

	session, err := h.loadDriver(ctx, query.DriverID())
	if err != nil {
		return GetDriverSessionQueryResponse{}, err
	}

	activeQuery, err := NewGetActiveOrderQuery(query.DriverID())
	if err != nil {
		return GetDriverSessionQueryResponse{}, err
	}

	active, err := h.activeHandler.Handle(ctx, activeQuery)
	switch {
	case err == nil:
		session.ActiveOrder = &active
	case errors.Is(err, errs.ErrObjectNotFound):
		session.ActiveOrder = nil
	default:
		return GetDriverSessionQueryResponse{}, err
	}

	available, err := h.readyHandler.Handle(ctx, NewGetReadyOrdersQuery())
	if err != nil {
		return GetDriverSessionQueryResponse{}, err
	}
	session.AvailableOrders = available

	return session, nil
}

func (h GetDriverSessionQueryHandler) loadDriver(
	ctx context.Context,
	driverID kernel.UUID,
) (GetDriverSessionQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, name, phone
		FROM drivers
		WHERE id = ?
	`, driverID.Bytes()).Row()

	var session GetDriverSessionQueryResponse
	var id uuid.UUID

	err := row.Scan(&id, &session.DriverName, &session.DriverPhone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDriverSessionQueryResponse{},
				errs.NewObjectNotFoundError("driver", driverID.String())
		}
		return GetDriverSessionQueryResponse{},
			errs.NewStoreUnavailableErrorWithCause("drivers", err)
	}

	sessionDriverID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDriverSessionQueryResponse{}, err
	}
	session.DriverID = sessionDriverID

	return session, nil
}
