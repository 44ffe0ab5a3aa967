package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// PoolBroadcastJob periodically re-publishes the current Ready pool to the
// change bus. The bus drops events subscribers have already seen, so a quiet
// pool produces no traffic; the broadcast only matters after a restart or a
// missed notification, when it reseeds the feed without anyone asking.
type PoolBroadcastJob struct {
	handler   queries.GetReadyOrdersQueryHandler
	publisher ports.OrderEventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPoolBroadcastJob creates a job that re-announces claimable orders.
func NewPoolBroadcastJob(
	handler queries.GetReadyOrdersQueryHandler,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) *PoolBroadcastJob {
	return &PoolBroadcastJob{
		handler:   handler,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "pool_broadcast_job"),
	}
}

// Start begins the pool broadcast job, running every thirty seconds.
func (j *PoolBroadcastJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		ready, handleErr := j.handler.Handle(ctx, queries.NewGetReadyOrdersQuery())
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Pool broadcast job failed", "error", handleErr)
			return
		}

		for _, o := range ready {
			j.publisher.Publish(ctx, order.ChangedEvent{
				OrderID:       o.ID,
				Status:        order.Ready,
				PaymentStatus: order.PaymentPending,
				Version:       o.Version,
			})
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pool broadcast job started (running every thirty seconds)")
	return nil
}

// Stop stops the pool broadcast job.
func (j *PoolBroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pool broadcast job stopped")
}
