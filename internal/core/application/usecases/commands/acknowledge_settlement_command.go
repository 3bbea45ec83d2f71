package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrAcknowledgeSettlementCommandIsNotConstructed = errors.New(
	"AcknowledgeSettlementCommand must be created via NewAcknowledgeSettlementCommand constructor",
)

// AcknowledgeSettlementCommand marks a pending settlement as seen without
// moving any money. Purely informational; the ledger is untouched.
type AcknowledgeSettlementCommand struct { //nolint:recvcheck //using for validation
	settlementID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcknowledgeSettlementCommand creates a command to acknowledge a settlement.
func NewAcknowledgeSettlementCommand(settlementID kernel.UUID) (AcknowledgeSettlementCommand, error) {
	cmd := AcknowledgeSettlementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSettlementID(settlementID); err != nil {
		return AcknowledgeSettlementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcknowledgeSettlementCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgeSettlementCommandIsNotConstructed)
}

// SettlementID returns the settlement to acknowledge.
func (c AcknowledgeSettlementCommand) SettlementID() kernel.UUID {
	return c.settlementID
}

func (c *AcknowledgeSettlementCommand) setSettlementID(settlementID kernel.UUID) error {
	if err := settlementID.Validate(); err != nil {
		return err
	}

	c.settlementID = settlementID
	return nil
}
