package commands

import (
	"context"
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/session"
	"settlement/internal/pkg/errs"
)

// CreateDispatchSessionCommandHandler opens dispatch sessions.
// An order may sit in at most one non-terminal session at a time; creation
// fails with a conflict when any order is already out with a carrier.
type CreateDispatchSessionCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewCreateDispatchSessionCommandHandler creates a handler for session creation.
func NewCreateDispatchSessionCommandHandler(uowFactory DispatchUoWFactory) CreateDispatchSessionCommandHandler {
	return CreateDispatchSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the session creation command.
func (h *CreateDispatchSessionCommandHandler) Handle(ctx context.Context, cmd CreateDispatchSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders := make([]*session.SessionOrder, 0, len(cmd.Orders()))
	for _, input := range cmd.Orders() {
		order, err := session.NewSessionOrder(input.OrderID, input.CODAmount, input.Prepaid, input.DestinationCity)
		if err != nil {
			return err
		}
		orders = append(orders, order)
	}

	aggregate, err := session.NewDispatchSession(
		cmd.SessionID(), cmd.CarrierID(), cmd.DispatchDate(), orders, cmd.Notes())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CarrierRepository().Get(ctx, cmd.CarrierID()); err != nil {
		return err
	}

	sessionRepo := uow.SessionRepository()

	orderIDs := make([]kernel.UUID, 0, len(cmd.Orders()))
	for _, input := range cmd.Orders() {
		orderIDs = append(orderIDs, input.OrderID)
	}

	busy, err := sessionRepo.FindOrdersInNonTerminalSessions(ctx, orderIDs)
	if err != nil {
		return err
	}
	if len(busy) > 0 {
		return errs.NewConflictError("orders",
			fmt.Sprintf("%d order(s) already belong to an active session", len(busy)))
	}

	if err = sessionRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
