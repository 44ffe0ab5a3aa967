package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleAssignmentJob *StaleAssignmentJob
	poolBroadcastJob   *PoolBroadcastJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers and the event publisher as dependencies to wire up
// the job execution.
func NewJobManager(
	staleHandler queries.GetStaleAssignmentsQueryHandler,
	readyHandler queries.GetReadyOrdersQueryHandler,
	publisher ports.OrderEventPublisher,
	staleThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleAssignmentJob: NewStaleAssignmentJob(staleHandler, staleThreshold, logger),
		poolBroadcastJob:   NewPoolBroadcastJob(readyHandler, publisher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale assignment job: %w", err)
	}

	if err := jm.poolBroadcastJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.staleAssignmentJob.Stop()
		return fmt.Errorf("failed to start pool broadcast job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.poolBroadcastJob.Stop()
	jm.staleAssignmentJob.Stop()
}
