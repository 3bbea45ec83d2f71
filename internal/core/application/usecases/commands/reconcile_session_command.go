package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/services"
	"settlement/internal/pkg/guard"
)

var (
	ErrReconcileSessionCommandIsNotConstructed = errors.New(
		"ReconcileSessionCommand must be created via NewReconcileSessionCommand constructor",
	)
	ErrOutcomesAreRequired        = errors.New("at least one delivery outcome is required")
	ErrTotalCollectedIsInvalid    = errors.New("total collected must not be negative")
	ErrDiscrepancyNotesAreTooLong = errors.New("discrepancy notes must not exceed 1000 characters")
)

const maxDiscrepancyNotesLength = 1000

// ReconcileSessionCommand represents the carrier's end-of-day report for a
// dispatched session: per-order delivery outcomes plus the cash actually
// handed over.
type ReconcileSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID        kernel.UUID
	outcomes         []services.OrderOutcome
	totalCollected   kernel.Money
	discrepancyNotes string

	guard guard.ConstructorGuard
}

// NewReconcileSessionCommand creates a command to reconcile a session.
// Per-order consistency (coverage, membership, failure reasons) is validated
// by the reconciliation service against the loaded session.
func NewReconcileSessionCommand(
	sessionID kernel.UUID,
	outcomes []services.OrderOutcome,
	totalCollected kernel.Money,
	discrepancyNotes string,
) (ReconcileSessionCommand, error) {
	cmd := ReconcileSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setOutcomes(outcomes),
		cmd.setTotalCollected(totalCollected),
		cmd.setDiscrepancyNotes(discrepancyNotes),
	); err != nil {
		return ReconcileSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileSessionCommand) Validate() error {
	return c.guard.Validate(ErrReconcileSessionCommandIsNotConstructed)
}

// SessionID returns the session being reconciled.
func (c ReconcileSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Outcomes returns the reported per-order delivery outcomes.
func (c ReconcileSessionCommand) Outcomes() []services.OrderOutcome {
	return c.outcomes
}

// TotalCollected returns the cash amount the carrier handed over.
func (c ReconcileSessionCommand) TotalCollected() kernel.Money {
	return c.totalCollected
}

// DiscrepancyNotes returns the clerk's explanation for a cash difference.
func (c ReconcileSessionCommand) DiscrepancyNotes() string {
	return c.discrepancyNotes
}

func (c *ReconcileSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *ReconcileSessionCommand) setOutcomes(outcomes []services.OrderOutcome) error {
	if len(outcomes) == 0 {
		return ErrOutcomesAreRequired
	}

	c.outcomes = outcomes
	return nil
}

func (c *ReconcileSessionCommand) setTotalCollected(totalCollected kernel.Money) error {
	if totalCollected.IsNegative() {
		return ErrTotalCollectedIsInvalid
	}

	c.totalCollected = totalCollected
	return nil
}

func (c *ReconcileSessionCommand) setDiscrepancyNotes(notes string) error {
	if len(notes) > maxDiscrepancyNotesLength {
		return ErrDiscrepancyNotesAreTooLong
	}

	c.discrepancyNotes = notes
	return nil
}
