package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const (
	// streamBufferSize is the per-subscriber event buffer. A client that
	// falls this far behind is cut off and must reconnect with a fresh read.
	streamBufferSize = 64

	// streamHeartbeatInterval keeps idle connections from being reaped by
	// intermediaries.
	streamHeartbeatInterval = 15 * time.Second
)

// OrderChangeEvent is the SSE payload streamed to subscribers whenever
// a committed order mutation occurs.
type OrderChangeEvent struct {
	OrderID       string  `json:"order_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	DriverID      *string `json:"driver_id"`
	Version       int64   `json:"version"`
}

// StreamOrderChanges handles GET /api/v1/orders/stream.
// It pushes order change events to the client as server-sent events.
// The stream carries no history: the client reads current state first,
// then applies events whose version exceeds what it already has. A closed
// stream means the client lagged and must reconnect.
func (s *Server) StreamOrderChanges(ctx echo.Context) error {
	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	subscription := s.eventBus.Subscribe(streamBufferSize)
	defer subscription.Close()

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil

		case event, ok := <-subscription.Events():
			if !ok {
				// Evicted for lagging; the client reconnects and re-reads.
				return nil
			}
			if err := writeChangeEvent(response, event); err != nil {
				return nil
			}

		case <-heartbeat.C:
			if _, err := fmt.Fprint(response, ": heartbeat\n\n"); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}

func writeChangeEvent(response *echo.Response, event order.ChangedEvent) error {
	payload := OrderChangeEvent{
		OrderID:       event.OrderID.String(),
		Status:        event.Status.String(),
		PaymentStatus: event.PaymentStatus.String(),
		Version:       event.Version,
	}
	if event.DriverID != nil {
		id := event.DriverID.String()
		payload.DriverID = &id
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(response, "event: order_change\ndata: %s\n\n", data); err != nil {
		return err
	}
	response.Flush()

	return nil
}
