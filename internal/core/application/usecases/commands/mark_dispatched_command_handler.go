package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/services"
)

// MarkDispatchedCommandHandler moves an open session to dispatched.
// Each order gets its shipping fee resolved and snapshotted at this moment;
// later zone or rate changes never affect an already dispatched session.
type MarkDispatchedCommandHandler struct {
	uowFactory DispatchUoWFactory
	resolver   services.FeeResolver
}

// NewMarkDispatchedCommandHandler creates a handler for session dispatch.
func NewMarkDispatchedCommandHandler(
	uowFactory DispatchUoWFactory,
	resolver services.FeeResolver,
) MarkDispatchedCommandHandler {
	return MarkDispatchedCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle processes the dispatch command.
func (h *MarkDispatchedCommandHandler) Handle(ctx context.Context, cmd MarkDispatchedCommand) error {
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

	// Status guard first, so a re-dispatch surfaces as a conflict rather
	// than a fee snapshot error.
	if _, err = aggregate.Status().Dispatch(); err != nil {
		return err
	}

	carrier, err := uow.CarrierRepository().Get(ctx, aggregate.CarrierID())
	if err != nil {
		return err
	}

	for _, order := range aggregate.Orders() {
		quote, err := h.resolver.Resolve(carrier, order.DestinationCity())
		if err != nil {
			return err
		}

		if err = order.SnapshotFee(quote.Rate, quote.ZoneName); err != nil {
			return err
		}
	}

	if err = aggregate.MarkDispatched(time.Now().UTC()); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
