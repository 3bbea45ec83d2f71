package commands

import (
	"context"
)

// UpdateZoneCommandHandler updates carrier zones.
type UpdateZoneCommandHandler struct {
	uowFactory CarrierUoWFactory
}

// NewUpdateZoneCommandHandler creates a handler for zone updates.
func NewUpdateZoneCommandHandler(uowFactory CarrierUoWFactory) UpdateZoneCommandHandler {
	return UpdateZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the zone update command.
func (h *UpdateZoneCommandHandler) Handle(ctx context.Context, cmd UpdateZoneCommand) error {
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

	carrierRepo := uow.CarrierRepository()
	aggregate, err := carrierRepo.Get(ctx, cmd.CarrierID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateZone(cmd.ZoneID(), cmd.Name(), cmd.Code(), cmd.Rate(), cmd.IsActive()); err != nil {
		return err
	}

	if err = carrierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
