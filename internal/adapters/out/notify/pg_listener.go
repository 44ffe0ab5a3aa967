package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/lib/pq"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// PgListener receives order change events from PostgreSQL's notification
// channel and feeds them into the broker. One listener per process is enough;
// it holds its own dedicated database connection.
type PgListener struct {
	listener *pq.Listener
	broker   *Broker
	channel  string
	logger   *slog.Logger
}

// NewPgListener creates a listener on the given channel.
// The connection is established lazily; pq reconnects with backoff after
// connection loss, and the watermark in the broker keeps redeliveries safe.
func NewPgListener(dsn, channel string, broker *Broker, logger *slog.Logger) *PgListener {
	log := logger.With("component", "pg_listener")

	listener := pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				log.Error("Listener connection event", "event", int(event), "error", err)
			}
		})

	return &PgListener{
		listener: listener,
		broker:   broker,
		channel:  channel,
		logger:   log,
	}
}

// Run subscribes to the channel and forwards notifications until ctx is done.
// Periodic pings keep the connection alive and trigger reconnects when it is
// broken.
func (l *PgListener) Run(ctx context.Context) error {
	if err := l.listener.Listen(l.channel); err != nil {
		return err
	}

	l.logger.InfoContext(ctx, "Listening for order changes", "channel", l.channel)

	for {
		select {
		case <-ctx.Done():
			return l.listener.Close()

		case notification := <-l.listener.Notify:
			if notification == nil {
				// nil is delivered after a reconnect; events may have been
				// missed, subscribers will catch up on their next read
				continue
			}
			l.dispatch(ctx, notification.Extra)

		case <-time.After(listenerPingInterval):
			if err := l.listener.Ping(); err != nil {
				l.logger.ErrorContext(ctx, "Listener ping failed", "error", err)
			}
		}
	}
}

func (l *PgListener) dispatch(ctx context.Context, payload string) {
	var dto changeEventDTO
	if err := json.Unmarshal([]byte(payload), &dto); err != nil {
		l.logger.ErrorContext(ctx, "Failed to decode change event", "error", err)
		return
	}

	event, err := fromDTO(dto)
	if err != nil {
		l.logger.ErrorContext(ctx, "Discarding malformed change event", "error", err)
		return
	}

	l.broker.Publish(ctx, event)
}

func fromDTO(dto changeEventDTO) (order.ChangedEvent, error) {
	orderID, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return order.ChangedEvent{}, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		id, driverErr := kernel.UUIDFromString(*dto.DriverID)
		if driverErr != nil {
			return order.ChangedEvent{}, driverErr
		}
		driverID = &id
	}

	return order.ChangedEvent{
		OrderID:       orderID,
		Status:        order.Status(dto.Status),
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		DriverID:      driverID,
		Version:       dto.Version,
	}, nil
}
