package commands

import (
	"context"
)

// DeleteZoneCommandHandler removes carrier zones.
type DeleteZoneCommandHandler struct {
	uowFactory CarrierUoWFactory
}

// NewDeleteZoneCommandHandler creates a handler for zone removal.
func NewDeleteZoneCommandHandler(uowFactory CarrierUoWFactory) DeleteZoneCommandHandler {
	return DeleteZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the zone removal command.
func (h *DeleteZoneCommandHandler) Handle(ctx context.Context, cmd DeleteZoneCommand) error {
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

	if err = aggregate.RemoveZone(cmd.ZoneID()); err != nil {
		return err
	}

	if err = carrierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
