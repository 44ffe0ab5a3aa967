// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order lifecycle.
//
// # Available Jobs
//
// 1. StaleAssignmentJob - Runs every minute to surface orders stuck in Assigned or PickedUp
// 2. PoolBroadcastJob - Periodically re-publishes the Ready pool to the change bus
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(staleHandler, readyHandler, publisher, staleThreshold, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs are read-only against the orders table and log failures instead of
// retrying: the next tick is the retry. The watchdog never mutates a stuck
// order; releasing it is an operator decision.
package jobs
