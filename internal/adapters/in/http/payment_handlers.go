package http

import (
	"net/http"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
)

// RegisterPaymentRequest is the body of POST /payments. SettlementID is
// optional: when present the payment also advances that settlement.
type RegisterPaymentRequest struct {
	CarrierID    string `json:"carrier_id"`
	Direction    string `json:"direction"`
	Amount       string `json:"amount"`
	Method       string `json:"method"`
	Reference    string `json:"reference,omitempty"`
	Notes        string `json:"notes,omitempty"`
	SettlementID string `json:"settlement_id,omitempty"`
	PaymentDate  string `json:"payment_date"`
}

// RegisterPaymentResponse returns the identifier of the recorded payment.
type RegisterPaymentResponse struct {
	PaymentID string `json:"payment_id"`
}

// RegisterPayment handles POST /api/v1/payments.
func (s *Server) RegisterPayment(ctx echo.Context) error {
	var req RegisterPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return badRequest(ctx, "invalid carrier_id: "+err.Error())
	}

	direction, err := payment.DirectionFromString(req.Direction)
	if err != nil {
		return badRequest(ctx, "invalid direction: "+err.Error())
	}

	amount, err := kernel.NewMoneyFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "invalid amount: "+err.Error())
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var settlementID *kernel.UUID
	if req.SettlementID != "" {
		id, err := kernel.UUIDFromString(req.SettlementID)
		if err != nil {
			return badRequest(ctx, "invalid settlement_id: "+err.Error())
		}
		settlementID = &id
	}

	paymentID := kernel.NewUUID()

	cmd, err := commands.NewRegisterPaymentCommand(
		paymentID, carrierID, direction, amount,
		req.Method, req.Reference, req.Notes, settlementID, paymentDate)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.registerPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterPaymentResponse{PaymentID: paymentID.String()})
}

// AcknowledgeSettlement handles POST /api/v1/settlements/{settlementId}/acknowledge.
func (s *Server) AcknowledgeSettlement(ctx echo.Context) error {
	settlementID, err := pathUUID(ctx, "settlementId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAcknowledgeSettlementCommand(settlementID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.acknowledgeSettlementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
