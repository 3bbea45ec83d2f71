package commands

import (
	"context"
)

// CreateZoneCommandHandler adds delivery zones to carriers.
// Rate changes only affect sessions dispatched afterwards; already
// dispatched sessions keep their fee snapshots.
type CreateZoneCommandHandler struct {
	uowFactory CarrierUoWFactory
}

// NewCreateZoneCommandHandler creates a handler for zone creation.
func NewCreateZoneCommandHandler(uowFactory CarrierUoWFactory) CreateZoneCommandHandler {
	return CreateZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the zone creation command.
func (h *CreateZoneCommandHandler) Handle(ctx context.Context, cmd CreateZoneCommand) error {
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

	if err = aggregate.AddZone(cmd.ZoneID(), cmd.Name(), cmd.Code(), cmd.Rate(), cmd.IsActive()); err != nil {
		return err
	}

	if err = carrierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
