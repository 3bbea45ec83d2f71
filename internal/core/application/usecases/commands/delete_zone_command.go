package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrDeleteZoneCommandIsNotConstructed = errors.New(
	"DeleteZoneCommand must be created via NewDeleteZoneCommand constructor",
)

// DeleteZoneCommand represents a request to remove a zone from a carrier.
// Existing fee snapshots keep the zone name as plain text.
type DeleteZoneCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	zoneID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteZoneCommand creates a command to remove a zone.
func NewDeleteZoneCommand(carrierID kernel.UUID, zoneID kernel.UUID) (DeleteZoneCommand, error) {
	cmd := DeleteZoneCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrierID(carrierID),
		cmd.setZoneID(zoneID),
	); err != nil {
		return DeleteZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteZoneCommand) Validate() error {
	return c.guard.Validate(ErrDeleteZoneCommandIsNotConstructed)
}

// CarrierID returns the carrier the zone belongs to.
func (c DeleteZoneCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// ZoneID returns the zone to remove.
func (c DeleteZoneCommand) ZoneID() kernel.UUID {
	return c.zoneID
}

func (c *DeleteZoneCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *DeleteZoneCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}

	c.zoneID = zoneID
	return nil
}
