package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrUpdateZoneCommandIsNotConstructed = errors.New(
	"UpdateZoneCommand must be created via NewUpdateZoneCommand constructor",
)

// UpdateZoneCommand represents a request to change a carrier zone's name,
// code, rate or active flag.
type UpdateZoneCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	zoneID    kernel.UUID
	name      string
	code      string
	rate      kernel.Money
	isActive  bool

	guard guard.ConstructorGuard
}

// NewUpdateZoneCommand creates a command to update a zone.
func NewUpdateZoneCommand(
	carrierID kernel.UUID,
	zoneID kernel.UUID,
	name string,
	code string,
	rate kernel.Money,
	isActive bool,
) (UpdateZoneCommand, error) {
	cmd := UpdateZoneCommand{
		code:     code,
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrierID(carrierID),
		cmd.setZoneID(zoneID),
		cmd.setName(name),
		cmd.setRate(rate),
	); err != nil {
		return UpdateZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateZoneCommand) Validate() error {
	return c.guard.Validate(ErrUpdateZoneCommandIsNotConstructed)
}

// CarrierID returns the carrier the zone belongs to.
func (c UpdateZoneCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// ZoneID returns the zone to update.
func (c UpdateZoneCommand) ZoneID() kernel.UUID {
	return c.zoneID
}

// Name returns the new zone name.
func (c UpdateZoneCommand) Name() string {
	return c.name
}

// Code returns the new zone code.
func (c UpdateZoneCommand) Code() string {
	return c.code
}

// Rate returns the new shipping rate.
func (c UpdateZoneCommand) Rate() kernel.Money {
	return c.rate
}

// IsActive returns the new active flag.
func (c UpdateZoneCommand) IsActive() bool {
	return c.isActive
}

func (c *UpdateZoneCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *UpdateZoneCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}

	c.zoneID = zoneID
	return nil
}

func (c *UpdateZoneCommand) setName(name string) error {
	if name == "" {
		return ErrZoneNameIsRequired
	}

	c.name = name
	return nil
}

func (c *UpdateZoneCommand) setRate(rate kernel.Money) error {
	if rate.IsNegative() {
		return ErrZoneRateIsInvalid
	}

	c.rate = rate
	return nil
}
