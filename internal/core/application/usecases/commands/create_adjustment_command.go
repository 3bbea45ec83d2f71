package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrCreateAdjustmentCommandIsNotConstructed = errors.New(
		"CreateAdjustmentCommand must be created via NewCreateAdjustmentCommand constructor",
	)
	ErrAdjustmentAmountIsZero          = errors.New("adjustment amount must not be zero")
	ErrAdjustmentDescriptionIsRequired = errors.New("adjustment description is required")
)

// CreateAdjustmentCommand represents a manual signed correction to a
// carrier's ledger. Corrections never rewrite history; they enter as new
// movements.
type CreateAdjustmentCommand struct { //nolint:recvcheck //using for validation
	adjustmentID kernel.UUID
	carrierID    kernel.UUID
	amount       kernel.Money
	description  string

	guard guard.ConstructorGuard
}

// NewCreateAdjustmentCommand creates a command to append an adjustment.
// The amount carries its own sign (positive = carrier owes more) and a
// description is mandatory.
func NewCreateAdjustmentCommand(
	adjustmentID kernel.UUID,
	carrierID kernel.UUID,
	amount kernel.Money,
	description string,
) (CreateAdjustmentCommand, error) {
	cmd := CreateAdjustmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAdjustmentID(adjustmentID),
		cmd.setCarrierID(carrierID),
		cmd.setAmount(amount),
		cmd.setDescription(description),
	); err != nil {
		return CreateAdjustmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAdjustmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAdjustmentCommandIsNotConstructed)
}

// AdjustmentID returns the identifier for the new movement.
func (c CreateAdjustmentCommand) AdjustmentID() kernel.UUID {
	return c.adjustmentID
}

// CarrierID returns the carrier whose ledger is adjusted.
func (c CreateAdjustmentCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// Amount returns the signed adjustment amount.
func (c CreateAdjustmentCommand) Amount() kernel.Money {
	return c.amount
}

// Description returns the mandatory explanation of the adjustment.
func (c CreateAdjustmentCommand) Description() string {
	return c.description
}

func (c *CreateAdjustmentCommand) setAdjustmentID(adjustmentID kernel.UUID) error {
	if err := adjustmentID.Validate(); err != nil {
		return err
	}

	c.adjustmentID = adjustmentID
	return nil
}

func (c *CreateAdjustmentCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *CreateAdjustmentCommand) setAmount(amount kernel.Money) error {
	if amount.IsZero() {
		return ErrAdjustmentAmountIsZero
	}

	c.amount = amount
	return nil
}

func (c *CreateAdjustmentCommand) setDescription(description string) error {
	if description == "" {
		return ErrAdjustmentDescriptionIsRequired
	}

	c.description = description
	return nil
}
