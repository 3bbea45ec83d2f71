package http

import (
	"net/http"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/settlement"
	"settlement/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	CarrierID    string                `json:"carrier_id"`
	DispatchDate string                `json:"dispatch_date"`
	Notes        string                `json:"notes,omitempty"`
	Orders       []SessionOrderRequest `json:"orders"`
}

// SessionOrderRequest is one order line of a session being created.
type SessionOrderRequest struct {
	OrderID         string `json:"order_id"`
	CODAmount       string `json:"cod_amount"`
	Prepaid         bool   `json:"prepaid"`
	DestinationCity string `json:"destination_city"`
}

// CreateSessionResponse returns the identifier of the opened session.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// AbandonSessionRequest is the body of POST /sessions/{id}/abandon.
type AbandonSessionRequest struct {
	Reason string `json:"reason"`
}

// ReconcileSessionRequest is the body of POST /sessions/{id}/reconcile.
type ReconcileSessionRequest struct {
	Outcomes         []OrderOutcomeRequest `json:"outcomes"`
	TotalCollected   string                `json:"total_collected"`
	DiscrepancyNotes string                `json:"discrepancy_notes,omitempty"`
}

// OrderOutcomeRequest records the delivery result of one order.
type OrderOutcomeRequest struct {
	OrderID         string `json:"order_id"`
	Delivered       bool   `json:"delivered"`
	FailureReason   string `json:"failure_reason,omitempty"`
	OverridePrepaid bool   `json:"override_prepaid,omitempty"`
}

// SettlementResponse is the settlement summary produced by reconciliation.
type SettlementResponse struct {
	SettlementID string `json:"settlement_id"`
	Code         string `json:"code"`
	CarrierID    string `json:"carrier_id"`
	SessionID    string `json:"session_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`

	TotalOrders       int    `json:"total_orders"`
	TotalDelivered    int    `json:"total_delivered"`
	TotalNotDelivered int    `json:"total_not_delivered"`
	CODExpected       string `json:"cod_expected"`
	CODCollected      string `json:"cod_collected"`
	CarrierFees       string `json:"carrier_fees"`
	FailedFees        string `json:"failed_fees"`
	NetReceivable     string `json:"net_receivable"`
	Discrepancy       string `json:"discrepancy"`
	HasDiscrepancy    bool   `json:"has_discrepancy"`
	DiscrepancyNotes  string `json:"discrepancy_notes,omitempty"`
}

// PendingSessionResponse is one entry of the reconciliation worklist.
type PendingSessionResponse struct {
	SessionID               string  `json:"session_id"`
	CarrierID               string  `json:"carrier_id"`
	CarrierName             string  `json:"carrier_name"`
	FailedAttemptFeePercent int     `json:"failed_attempt_fee_percent"`
	DispatchDate            string  `json:"dispatch_date"`
	DispatchedAt            *string `json:"dispatched_at,omitempty"`
	TotalOrders             int     `json:"total_orders"`
	CODExpected             string  `json:"cod_expected"`
	TotalPrepaid            string  `json:"total_prepaid"`
}

// SessionOrderResponse is one order line of a session's reconciliation sheet.
type SessionOrderResponse struct {
	OrderID         string  `json:"order_id"`
	CODAmount       string  `json:"cod_amount"`
	Prepaid         bool    `json:"prepaid"`
	OverridePrepaid bool    `json:"override_prepaid"`
	DestinationCity string  `json:"destination_city"`
	ShippingCost    *string `json:"shipping_cost,omitempty"`
	ZoneName        string  `json:"zone_name,omitempty"`
	DeliveryResult  string  `json:"delivery_result"`
	FailureReason   string  `json:"failure_reason,omitempty"`
}

// CreateSession handles POST /api/v1/sessions.
func (s *Server) CreateSession(ctx echo.Context) error {
	var req CreateSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return badRequest(ctx, "invalid carrier_id: "+err.Error())
	}

	dispatchDate, err := parseDate(req.DispatchDate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders := make([]commands.SessionOrderInput, 0, len(req.Orders))
	for _, line := range req.Orders {
		orderID, err := kernel.UUIDFromString(line.OrderID)
		if err != nil {
			return badRequest(ctx, "invalid order_id: "+err.Error())
		}

		codAmount, err := kernel.NewMoneyFromString(line.CODAmount)
		if err != nil {
			return badRequest(ctx, "invalid cod_amount: "+err.Error())
		}

		orders = append(orders, commands.SessionOrderInput{
			OrderID:         orderID,
			CODAmount:       codAmount,
			Prepaid:         line.Prepaid,
			DestinationCity: line.DestinationCity,
		})
	}

	sessionID := kernel.NewUUID()

	cmd, err := commands.NewCreateDispatchSessionCommand(
		sessionID, carrierID, dispatchDate, orders, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateSessionResponse{SessionID: sessionID.String()})
}

// DispatchSession handles POST /api/v1/sessions/{sessionId}/dispatch.
func (s *Server) DispatchSession(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewMarkDispatchedCommand(sessionID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markDispatchedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AbandonSession handles POST /api/v1/sessions/{sessionId}/abandon.
func (s *Server) AbandonSession(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req AbandonSessionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAbandonSessionCommand(sessionID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.abandonSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReconcileSession handles POST /api/v1/sessions/{sessionId}/reconcile.
// On success the draft for the session, if any, is discarded.
func (s *Server) ReconcileSession(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ReconcileSessionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	totalCollected, err := kernel.NewMoneyFromString(req.TotalCollected)
	if err != nil {
		return badRequest(ctx, "invalid total_collected: "+err.Error())
	}

	outcomes := make([]services.OrderOutcome, 0, len(req.Outcomes))
	for _, line := range req.Outcomes {
		orderID, err := kernel.UUIDFromString(line.OrderID)
		if err != nil {
			return badRequest(ctx, "invalid order_id: "+err.Error())
		}

		outcomes = append(outcomes, services.OrderOutcome{
			OrderID:         orderID,
			Delivered:       line.Delivered,
			FailureReason:   line.FailureReason,
			OverridePrepaid: line.OverridePrepaid,
		})
	}

	cmd, err := commands.NewReconcileSessionCommand(
		sessionID, outcomes, totalCollected, req.DiscrepancyNotes)
	if err != nil {
		return respondError(ctx, err)
	}

	record, err := s.reconcileSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	// The draft served its purpose. Losing the delete is harmless, the
	// draft expires on its own.
	_ = s.draftStore.Delete(ctx.Request().Context(), sessionID)

	return ctx.JSON(http.StatusCreated, settlementResponseFrom(record))
}

// GetPendingReconciliation handles GET /api/v1/reconciliation/pending.
func (s *Server) GetPendingReconciliation(ctx echo.Context) error {
	query := queries.NewGetPendingReconciliationQuery()

	sessions, err := s.pendingReconciliationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]PendingSessionResponse, len(sessions))
	for i, item := range sessions {
		var dispatchedAt *string
		if item.DispatchedAt != nil {
			formatted := item.DispatchedAt.Format(time.RFC3339)
			dispatchedAt = &formatted
		}

		response[i] = PendingSessionResponse{
			SessionID:               item.SessionID.String(),
			CarrierID:               item.CarrierID.String(),
			CarrierName:             item.CarrierName,
			FailedAttemptFeePercent: item.FailedAttemptFeePercent,
			DispatchDate:            item.DispatchDate.Format(dateLayout),
			DispatchedAt:            dispatchedAt,
			TotalOrders:             item.TotalOrders,
			CODExpected:             item.CODExpected.String(),
			TotalPrepaid:            item.TotalPrepaid.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSessionOrders handles GET /api/v1/sessions/{sessionId}/orders.
func (s *Server) GetSessionOrders(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrdersForReconciliationQuery(sessionID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.ordersForReconciliationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]SessionOrderResponse, len(orders))
	for i, item := range orders {
		var shippingCost *string
		if item.ShippingCost != nil {
			formatted := item.ShippingCost.String()
			shippingCost = &formatted
		}

		response[i] = SessionOrderResponse{
			OrderID:         item.OrderID.String(),
			CODAmount:       item.CODAmount.String(),
			Prepaid:         item.Prepaid,
			OverridePrepaid: item.OverridePrepaid,
			DestinationCity: item.DestinationCity,
			ShippingCost:    shippingCost,
			ZoneName:        item.ZoneName,
			DeliveryResult:  item.DeliveryResult,
			FailureReason:   item.FailureReason,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func settlementResponseFrom(record *settlement.Settlement) SettlementResponse {
	totals := record.Totals()

	return SettlementResponse{
		SettlementID:      record.ID().String(),
		Code:              record.Code(),
		CarrierID:         record.CarrierID().String(),
		SessionID:         record.SessionID().String(),
		Date:              record.Date().Format(dateLayout),
		Status:            record.Status().String(),
		TotalOrders:       totals.TotalOrders,
		TotalDelivered:    totals.TotalDelivered,
		TotalNotDelivered: totals.TotalNotDelivered,
		CODExpected:       totals.CODExpected.String(),
		CODCollected:      totals.CODCollected.String(),
		CarrierFees:       totals.CarrierFees.String(),
		FailedFees:        totals.FailedFees.String(),
		NetReceivable:     totals.NetReceivable.String(),
		Discrepancy:       totals.Discrepancy.String(),
		HasDiscrepancy:    totals.HasDiscrepancy,
		DiscrepancyNotes:  totals.DiscrepancyNotes,
	}
}
