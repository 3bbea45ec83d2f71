package jobs

import (
	"context"
	"log/slog"

	"settlement/internal/core/domain/model/settlement"
	"settlement/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// SettlementReminderJob periodically reports settlements stuck awaiting
// payment. It only logs; chasing the carrier is a human's job.
type SettlementReminderJob struct {
	uowFactory ports.UnitOfWorkFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewSettlementReminderJob creates a job that surfaces unpaid settlements.
func NewSettlementReminderJob(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *SettlementReminderJob {
	return &SettlementReminderJob{
		uowFactory: uowFactory,
		cron:       cron.New(),
		logger:     logger.With("component", "settlement_reminder_job"),
	}
}

// Start schedules the reminder to run every hour.
func (j *SettlementReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement reminder job started (running hourly)")
	return nil
}

// Stop stops the reminder job.
func (j *SettlementReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Settlement reminder job stopped")
}

func (j *SettlementReminderJob) run() {
	ctx := context.Background()
	uow := j.uowFactory.Create()

	pending, err := uow.SettlementRepository().GetAllInStatus(ctx, settlement.PendingPayment)
	if err != nil {
		j.logger.ErrorContext(ctx, "Settlement reminder job failed", "error", err)
		return
	}

	for _, record := range pending {
		j.logger.WarnContext(ctx, "Settlement awaiting payment",
			"settlement_code", record.Code(),
			"carrier_id", record.CarrierID().String(),
			"settlement_date", record.Date().Format("2006-01-02"),
			"outstanding", record.Outstanding().String(),
		)
	}
}
