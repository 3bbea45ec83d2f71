package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrCreateZoneCommandIsNotConstructed = errors.New(
		"CreateZoneCommand must be created via NewCreateZoneCommand constructor",
	)
	ErrZoneNameIsRequired = errors.New("zone name is required")
	ErrZoneRateIsInvalid  = errors.New("zone rate must not be negative")
)

// CreateZoneCommand represents a request to add a delivery zone to a carrier.
type CreateZoneCommand struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	zoneID    kernel.UUID
	name      string
	code      string
	rate      kernel.Money
	isActive  bool

	guard guard.ConstructorGuard
}

// NewCreateZoneCommand creates a command to add a zone. The code is optional;
// name/code uniqueness within the carrier is enforced by the aggregate.
func NewCreateZoneCommand(
	carrierID kernel.UUID,
	zoneID kernel.UUID,
	name string,
	code string,
	rate kernel.Money,
	isActive bool,
) (CreateZoneCommand, error) {
	cmd := CreateZoneCommand{
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
		return CreateZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateZoneCommandIsNotConstructed)
}

// CarrierID returns the carrier the zone belongs to.
func (c CreateZoneCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// ZoneID returns the identifier for the new zone.
func (c CreateZoneCommand) ZoneID() kernel.UUID {
	return c.zoneID
}

// Name returns the zone name.
func (c CreateZoneCommand) Name() string {
	return c.name
}

// Code returns the optional short zone code.
func (c CreateZoneCommand) Code() string {
	return c.code
}

// Rate returns the zone's shipping rate.
func (c CreateZoneCommand) Rate() kernel.Money {
	return c.rate
}

// IsActive returns whether the zone participates in fee resolution.
func (c CreateZoneCommand) IsActive() bool {
	return c.isActive
}

func (c *CreateZoneCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *CreateZoneCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}

	c.zoneID = zoneID
	return nil
}

func (c *CreateZoneCommand) setName(name string) error {
	if name == "" {
		return ErrZoneNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateZoneCommand) setRate(rate kernel.Money) error {
	if rate.IsNegative() {
		return ErrZoneRateIsInvalid
	}

	c.rate = rate
	return nil
}
