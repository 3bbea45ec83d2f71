package jobs

import (
	"context"
	"log/slog"
	"time"

	"settlement/internal/core/domain/model/session"
	"settlement/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// StaleSessionJob periodically reports dispatched sessions that were never
// reconciled. Reconciliation is an end-of-day task, so a session still
// dispatched the morning after its dispatch date has been forgotten.
type StaleSessionJob struct {
	uowFactory ports.UnitOfWorkFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleSessionJob creates a job that surfaces forgotten sessions.
func NewStaleSessionJob(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *StaleSessionJob {
	return &StaleSessionJob{
		uowFactory: uowFactory,
		cron:       cron.New(),
		logger:     logger.With("component", "stale_session_job"),
	}
}

// Start schedules the check to run every hour.
func (j *StaleSessionJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale session job started (running hourly)")
	return nil
}

// Stop stops the stale session job.
func (j *StaleSessionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale session job stopped")
}

func (j *StaleSessionJob) run() {
	ctx := context.Background()
	uow := j.uowFactory.Create()

	dispatched, err := uow.SessionRepository().GetAllInStatus(ctx, session.Dispatched)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale session job failed", "error", err)
		return
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, aggregate := range dispatched {
		if !aggregate.DispatchDate().Before(today) {
			continue
		}

		j.logger.WarnContext(ctx, "Dispatched session still awaiting reconciliation",
			"session_id", aggregate.ID().String(),
			"carrier_id", aggregate.CarrierID().String(),
			"dispatch_date", aggregate.DispatchDate().Format("2006-01-02"),
			"total_orders", len(aggregate.Orders()),
		)
	}
}
