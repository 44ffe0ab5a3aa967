package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleAssignmentJob watches for orders that have been sitting in Assigned or
// PickedUp longer than the configured threshold. Runs every minute and logs
// each stuck delivery so operators can chase the driver or release the order.
type StaleAssignmentJob struct {
	handler   queries.GetStaleAssignmentsQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleAssignmentJob creates a watchdog for stuck in-progress orders.
// Threshold sets how long a delivery may stay in progress before it is flagged.
func NewStaleAssignmentJob(
	handler queries.GetStaleAssignmentsQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleAssignmentJob {
	return &StaleAssignmentJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "stale_assignment_job"),
	}
}

// Start begins the stale assignment watchdog, running every minute.
func (j *StaleAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, queryErr := queries.NewGetStaleAssignmentsQuery(j.threshold)
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Stale assignment job misconfigured", "error", queryErr)
			return
		}

		stale, handleErr := j.handler.Handle(ctx, query)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale assignment job failed", "error", handleErr)
			return
		}

		for _, o := range stale {
			j.logger.WarnContext(ctx, "Order stuck in progress",
				"order_id", o.ID.String(),
				"driver_id", o.DriverID.String(),
				"status", o.Status.String(),
				"version", o.Version,
				"stuck_for", time.Since(o.UpdatedAt).Round(time.Second).String(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale assignment job started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the stale assignment watchdog.
func (j *StaleAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale assignment job stopped")
}
