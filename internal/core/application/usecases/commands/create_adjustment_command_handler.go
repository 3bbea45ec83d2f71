package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/ledger"
)

// CreateAdjustmentCommandHandler appends manual adjustment movements.
type CreateAdjustmentCommandHandler struct {
	uowFactory AdjustmentUoWFactory
}

// NewCreateAdjustmentCommandHandler creates a handler for ledger adjustments.
func NewCreateAdjustmentCommandHandler(uowFactory AdjustmentUoWFactory) CreateAdjustmentCommandHandler {
	return CreateAdjustmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the adjustment command.
func (h *CreateAdjustmentCommandHandler) Handle(ctx context.Context, cmd CreateAdjustmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	movement, err := ledger.NewMovement(
		cmd.AdjustmentID(), cmd.CarrierID(), ledger.Adjustment,
		cmd.Amount(), cmd.Description(), time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CarrierRepository().Get(ctx, cmd.CarrierID()); err != nil {
		return err
	}

	if err = uow.LedgerRepository().Add(ctx, movement); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
