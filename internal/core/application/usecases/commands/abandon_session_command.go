package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrAbandonSessionCommandIsNotConstructed = errors.New(
		"AbandonSessionCommand must be created via NewAbandonSessionCommand constructor",
	)
	ErrAbandonReasonIsRequired = errors.New("abandon reason is required")
)

// AbandonSessionCommand represents a request to abandon an open session,
// releasing its orders for a future session.
type AbandonSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewAbandonSessionCommand creates a command to abandon a session.
// A reason is mandatory.
func NewAbandonSessionCommand(sessionID kernel.UUID, reason string) (AbandonSessionCommand, error) {
	cmd := AbandonSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setReason(reason),
	); err != nil {
		return AbandonSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AbandonSessionCommand) Validate() error {
	return c.guard.Validate(ErrAbandonSessionCommandIsNotConstructed)
}

// SessionID returns the session to abandon.
func (c AbandonSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Reason returns why the session was abandoned.
func (c AbandonSessionCommand) Reason() string {
	return c.reason
}

func (c *AbandonSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *AbandonSessionCommand) setReason(reason string) error {
	if reason == "" {
		return ErrAbandonReasonIsRequired
	}

	c.reason = reason
	return nil
}
