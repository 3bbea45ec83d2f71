package commands

import (
	"context"
	"time"
)

// AbandonSessionCommandHandler abandons open sessions.
// Abandonment is terminal and leaves no ledger trace; the session's orders
// become eligible for a new session immediately.
type AbandonSessionCommandHandler struct {
	uowFactory SessionUoWFactory
}

// NewAbandonSessionCommandHandler creates a handler for session abandonment.
func NewAbandonSessionCommandHandler(uowFactory SessionUoWFactory) AbandonSessionCommandHandler {
	return AbandonSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the abandon command.
func (h *AbandonSessionCommandHandler) Handle(ctx context.Context, cmd AbandonSessionCommand) error {
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

	sessionRepo := uow.SessionRepository()
	aggregate, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = aggregate.Abandon(cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
