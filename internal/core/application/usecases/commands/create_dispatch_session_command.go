package commands

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrCreateDispatchSessionCommandIsNotConstructed = errors.New(
		"CreateDispatchSessionCommand must be created via NewCreateDispatchSessionCommand constructor",
	)
	ErrDispatchDateIsRequired = errors.New("dispatch date is required")
	ErrOrdersAreRequired      = errors.New("at least one order is required")
)

// SessionOrderInput is one order line of a session being created.
type SessionOrderInput struct {
	OrderID         kernel.UUID
	CODAmount       kernel.Money
	Prepaid         bool
	DestinationCity string
}

// CreateDispatchSessionCommand represents a request to open a new dispatch
// session for a carrier with a batch of orders.
type CreateDispatchSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID    kernel.UUID
	carrierID    kernel.UUID
	dispatchDate time.Time
	orders       []SessionOrderInput
	notes        string

	guard guard.ConstructorGuard
}

// NewCreateDispatchSessionCommand creates a command to open a session.
// The order list must be non-empty; per-order validation (unique IDs,
// non-negative COD amounts) happens in the domain constructor.
func NewCreateDispatchSessionCommand(
	sessionID kernel.UUID,
	carrierID kernel.UUID,
	dispatchDate time.Time,
	orders []SessionOrderInput,
	notes string,
) (CreateDispatchSessionCommand, error) {
	cmd := CreateDispatchSessionCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setCarrierID(carrierID),
		cmd.setDispatchDate(dispatchDate),
		cmd.setOrders(orders),
	); err != nil {
		return CreateDispatchSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDispatchSessionCommand) Validate() error {
	return c.guard.Validate(ErrCreateDispatchSessionCommandIsNotConstructed)
}

// SessionID returns the identifier for the new session.
func (c CreateDispatchSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// CarrierID returns the carrier the session belongs to.
func (c CreateDispatchSessionCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

// DispatchDate returns the planned dispatch date.
func (c CreateDispatchSessionCommand) DispatchDate() time.Time {
	return c.dispatchDate
}

// Orders returns the order lines of the session.
func (c CreateDispatchSessionCommand) Orders() []SessionOrderInput {
	return c.orders
}

// Notes returns the free-form session notes.
func (c CreateDispatchSessionCommand) Notes() string {
	return c.notes
}

func (c *CreateDispatchSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *CreateDispatchSessionCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}

func (c *CreateDispatchSessionCommand) setDispatchDate(dispatchDate time.Time) error {
	if dispatchDate.IsZero() {
		return ErrDispatchDateIsRequired
	}

	c.dispatchDate = dispatchDate
	return nil
}

func (c *CreateDispatchSessionCommand) setOrders(orders []SessionOrderInput) error {
	if len(orders) == 0 {
		return ErrOrdersAreRequired
	}

	c.orders = orders
	return nil
}
