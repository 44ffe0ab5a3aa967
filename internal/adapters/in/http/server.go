// Package http exposes the order lifecycle engine over a JSON HTTP API.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the order lifecycle engine.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	claimOrderHandler   commands.ClaimOrderCommandHandler
	advanceOrderHandler commands.AdvanceOrderCommandHandler
	createOrderHandler  commands.CreateOrderCommandHandler
	createDriverHandler commands.CreateDriverCommandHandler

	// Query handlers
	getReadyOrdersHandler   queries.GetReadyOrdersQueryHandler
	getActiveOrderHandler   queries.GetActiveOrderQueryHandler
	getDriverSessionHandler queries.GetDriverSessionQueryHandler

	// Change notification
	eventBus ports.OrderEventBus
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	claimOrderHandler commands.ClaimOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	createDriverHandler commands.CreateDriverCommandHandler,
	getReadyOrdersHandler queries.GetReadyOrdersQueryHandler,
	getActiveOrderHandler queries.GetActiveOrderQueryHandler,
	getDriverSessionHandler queries.GetDriverSessionQueryHandler,
	eventBus ports.OrderEventBus,
) *Server {
	return &Server{
		claimOrderHandler:       claimOrderHandler,
		advanceOrderHandler:     advanceOrderHandler,
		createOrderHandler:      createOrderHandler,
		createDriverHandler:     createDriverHandler,
		getReadyOrdersHandler:   getReadyOrdersHandler,
		getActiveOrderHandler:   getActiveOrderHandler,
		getDriverSessionHandler: getDriverSessionHandler,
		eventBus:                eventBus,
	}
}

// RegisterRoutes wires all API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/orders/available", s.GetAvailableOrders)
	api.GET("/orders/stream", s.StreamOrderChanges)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/claim", s.ClaimOrder)
	api.POST("/orders/:orderID/advance", s.AdvanceOrder)
	api.POST("/drivers", s.CreateDriver)
	api.GET("/drivers/:driverID/active-order", s.GetActiveOrder)
	api.GET("/drivers/:driverID/session", s.GetDriverSession)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetAvailableOrders handles GET /api/v1/orders/available - the claimable pool.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	query := queries.NewGetReadyOrdersQuery()

	available, err := s.getReadyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := make([]AvailableOrder, len(available))
	for i, o := range available {
		response[i] = AvailableOrder{
			ID:              o.ID.String(),
			StoreID:         o.StoreID.String(),
			TotalAmount:     o.TotalAmount.Amount(),
			DeliveryFee:     o.DeliveryFee.Amount(),
			Currency:        o.TotalAmount.Currency(),
			DeliveryAddress: o.DeliveryAddress,
			CustomerName:    o.CustomerName,
			CustomerPhone:   o.CustomerPhone,
			Version:         o.Version,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrder handles GET /api/v1/drivers/:driverID/active-order.
// Responds 200 with a null body when the driver has no delivery in progress;
// having nothing to deliver is a normal state, not an error.
func (s *Server) GetActiveOrder(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driverID"))
	if err != nil {
		return s.badRequest(ctx, "Invalid driver ID")
	}

	query, err := queries.NewGetActiveOrderQuery(driverID)
	if err != nil {
		return s.badRequest(ctx, "Invalid driver ID")
	}

	active, err := s.getActiveOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusOK, (*ActiveOrder)(nil))
		}
		return s.errorResponse(ctx, err)
	}

	response := activeOrderToResponse(active)
	return ctx.JSON(http.StatusOK, &response)
}

// GetDriverSession handles GET /api/v1/drivers/:driverID/session.
// Returns the driver's active order, if any, together with the claimable pool.
func (s *Server) GetDriverSession(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driverID"))
	if err != nil {
		return s.badRequest(ctx, "Invalid driver ID")
	}

	query, err := queries.NewGetDriverSessionQuery(driverID)
	if err != nil {
		return s.badRequest(ctx, "Invalid driver ID")
	}

	session, err := s.getDriverSessionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := DriverSession{
		DriverID:        session.DriverID.String(),
		DriverName:      session.DriverName,
		DriverPhone:     session.DriverPhone,
		AvailableOrders: make([]AvailableOrder, len(session.AvailableOrders)),
	}
	if session.ActiveOrder != nil {
		active := activeOrderToResponse(*session.ActiveOrder)
		response.ActiveOrder = &active
	}
	for i, o := range session.AvailableOrders {
		response.AvailableOrders[i] = AvailableOrder{
			ID:              o.ID.String(),
			StoreID:         o.StoreID.String(),
			TotalAmount:     o.TotalAmount.Amount(),
			DeliveryFee:     o.DeliveryFee.Amount(),
			Currency:        o.TotalAmount.Currency(),
			DeliveryAddress: o.DeliveryAddress,
			CustomerName:    o.CustomerName,
			CustomerPhone:   o.CustomerPhone,
			Version:         o.Version,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimOrder handles POST /api/v1/orders/:orderID/claim.
// Responds 409 when another driver won the race or the claimant already has
// an active order, 422 when the order has already left Ready.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order ID")
	}

	var request ClaimOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return s.badRequest(ctx, "Invalid driver ID")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, driverID)
	if err != nil {
		return s.badRequest(ctx, "Invalid claim request: "+err.Error())
	}

	claimed, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(claimed))
}

// AdvanceOrder handles POST /api/v1/orders/:orderID/advance.
// Moves the order to the requested target status on behalf of a driver.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order ID")
	}

	var request AdvanceOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return s.badRequest(ctx, "Invalid driver ID")
	}

	targetStatus, err := order.StatusFromString(request.TargetStatus)
	if err != nil {
		return s.badRequest(ctx, "Invalid target status")
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, driverID, targetStatus)
	if err != nil {
		return s.badRequest(ctx, "Invalid advance request: "+err.Error())
	}

	advanced, err := s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(advanced))
}

// CreateOrder handles POST /api/v1/orders - registers a new delivery order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	storeID, err := kernel.UUIDFromString(request.StoreID)
	if err != nil {
		return s.badRequest(ctx, "Invalid store ID")
	}

	totalAmount, err := kernel.NewMoney(request.TotalAmount, request.Currency)
	if err != nil {
		return s.badRequest(ctx, "Invalid total amount: "+err.Error())
	}

	deliveryFee, err := kernel.NewMoney(request.DeliveryFee, request.Currency)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery fee: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, storeID, totalAmount, deliveryFee,
		request.DeliveryAddress, request.CustomerName, request.CustomerPhone,
	)
	if err != nil {
		return s.badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// CreateDriver handles POST /api/v1/drivers - registers a new driver.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var request CreateDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, request.Name, request.Phone)
	if err != nil {
		return s.badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	if err = s.createDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: driverID.String()})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps domain errors onto HTTP status codes:
//
//	invalid transition            -> 422
//	actor does not own the order  -> 403
//	version conflict, busy driver -> 409
//	missing object, driver        -> 404
//	store unavailable             -> 503
//
// Everything else is a 500.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, order.ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrUnauthorizedActor):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, commands.ErrDriverHasActiveOrder):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, commands.ErrDriverNotRegistered):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrStoreUnavailable):
		code = http.StatusServiceUnavailable
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
