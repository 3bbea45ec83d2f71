package commands

import (
	"context"
	"time"
)

// AcknowledgeSettlementCommandHandler timestamps a settlement as reviewed.
type AcknowledgeSettlementCommandHandler struct {
	uowFactory SettlementUoWFactory
}

// NewAcknowledgeSettlementCommandHandler creates a handler for settlement acknowledgement.
func NewAcknowledgeSettlementCommandHandler(uowFactory SettlementUoWFactory) AcknowledgeSettlementCommandHandler {
	return AcknowledgeSettlementCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acknowledge command.
func (h *AcknowledgeSettlementCommandHandler) Handle(ctx context.Context, cmd AcknowledgeSettlementCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	settlementRepo := uow.SettlementRepository()
	record, err := settlementRepo.Get(ctx, cmd.SettlementID())
	if err != nil {
		return err
	}

	if err = record.Acknowledge(time.Now().UTC()); err != nil {
		return err
	}

	if err = settlementRepo.Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
