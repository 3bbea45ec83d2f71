// Package jobs provides the scheduled background tasks of the settlement
// engine, built on github.com/robfig/cron/v3.
//
// Both jobs are watchdogs: they query for work that has been sitting too
// long and log it, they never mutate state. SettlementReminderJob surfaces
// settlements stuck awaiting payment; StaleSessionJob surfaces dispatched
// sessions that missed their end-of-day reconciliation.
package jobs

import (
	"fmt"
	"log/slog"

	"settlement/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	settlementReminderJob *SettlementReminderJob
	staleSessionJob       *StaleSessionJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *JobManager {
	return &JobManager{
		settlementReminderJob: NewSettlementReminderJob(uowFactory, logger),
		staleSessionJob:       NewStaleSessionJob(uowFactory, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.settlementReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start settlement reminder job: %w", err)
	}

	if err := jm.staleSessionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.settlementReminderJob.Stop()
		return fmt.Errorf("failed to start stale session job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.settlementReminderJob.Stop()
	jm.staleSessionJob.Stop()
}
