package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrMarkDispatchedCommandIsNotConstructed = errors.New(
	"MarkDispatchedCommand must be created via NewMarkDispatchedCommand constructor",
)

// MarkDispatchedCommand represents a request to hand an open session over to
// the carrier, freezing the shipping fee of every order.
type MarkDispatchedCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDispatchedCommand creates a command to dispatch a session.
func NewMarkDispatchedCommand(sessionID kernel.UUID) (MarkDispatchedCommand, error) {
	cmd := MarkDispatchedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return MarkDispatchedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDispatchedCommand) Validate() error {
	return c.guard.Validate(ErrMarkDispatchedCommandIsNotConstructed)
}

// SessionID returns the session to dispatch.
func (c MarkDispatchedCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *MarkDispatchedCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
