package http

import (
	"net/http"
	"strconv"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"

	"github.com/labstack/echo/v4"
)

// ZoneRequest is the body of zone create and update calls.
type ZoneRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Rate     string `json:"rate"`
	IsActive bool   `json:"is_active"`
}

// CreateZoneResponse returns the identifier of the created zone.
type CreateZoneResponse struct {
	ZoneID string `json:"zone_id"`
}

// FeeResponse is the priced quote of GET /carriers/{id}/fee.
type FeeResponse struct {
	Rate      string `json:"rate"`
	FeeSource string `json:"fee_source"`
	ZoneName  string `json:"zone_name,omitempty"`
}

// BalanceResponse is one carrier's net ledger position.
type BalanceResponse struct {
	CarrierID   string `json:"carrier_id"`
	CarrierName string `json:"carrier_name"`
	Balance     string `json:"balance"`
}

// MovementResponse is one ledger movement in a carrier's history.
type MovementResponse struct {
	MovementID   string  `json:"movement_id"`
	MovementType string  `json:"movement_type"`
	Amount       string  `json:"amount"`
	Description  string  `json:"description,omitempty"`
	SettlementID *string `json:"settlement_id,omitempty"`
	PaymentID    *string `json:"payment_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// CreateAdjustmentRequest is the body of POST /carriers/{id}/adjustments.
// Amount is signed: positive increases what the carrier owes the store.
type CreateAdjustmentRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// CreateAdjustmentResponse returns the identifier of the ledger movement.
type CreateAdjustmentResponse struct {
	MovementID string `json:"movement_id"`
}

// CreateZone handles POST /api/v1/carriers/{carrierId}/zones.
func (s *Server) CreateZone(ctx echo.Context) error {
	carrierID, err := pathUUID(ctx, "carrierId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ZoneRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	rate, err := kernel.NewMoneyFromString(req.Rate)
	if err != nil {
		return badRequest(ctx, "invalid rate: "+err.Error())
	}

	zoneID := kernel.NewUUID()

	cmd, err := commands.NewCreateZoneCommand(
		carrierID, zoneID, req.Name, req.Code, rate, req.IsActive)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createZoneHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateZoneResponse{ZoneID: zoneID.String()})
}

// UpdateZone handles PUT /api/v1/carriers/{carrierId}/zones/{zoneId}.
func (s *Server) UpdateZone(ctx echo.Context) error {
	carrierID, err := pathUUID(ctx, "carrierId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	zoneID, err := pathUUID(ctx, "zoneId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ZoneRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	rate, err := kernel.NewMoneyFromString(req.Rate)
	if err != nil {
		return badRequest(ctx, "invalid rate: "+err.Error())
	}

	cmd, err := commands.NewUpdateZoneCommand(
		carrierID, zoneID, req.Name, req.Code, rate, req.IsActive)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateZoneHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteZone handles DELETE /api/v1/carriers/{carrierId}/zones/{zoneId}.
func (s *Server) DeleteZone(ctx echo.Context) error {
	carrierID, err := pathUUID(ctx, "carrierId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	zoneID, err := pathUUID(ctx, "zoneId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeleteZoneCommand(carrierID, zoneID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteZoneHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CalculateFee handles GET /api/v1/carriers/{carrierId}/fee?city=Medellín.
func (s *Server) CalculateFee(ctx echo.Context) error {
	carrierID, err := pathUUID(ctx, "carrierId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewCalculateFeeQuery(carrierID, ctx.QueryParam("city"))
	if err != nil {
		return respondError(ctx, err)
	}

	quote, err := s.calculateFeeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, FeeResponse{
		Rate:      quote.Rate.String(),
		FeeSource: quote.FeeSource,
		ZoneName:  quote.ZoneName,
	})
}

// GetBalances handles GET /api/v1/balances.
func (s *Server) GetBalances(ctx echo.Context) error {
	query := queries.NewGetBalancesQuery()

	balances, err := s.getBalancesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]BalanceResponse, len(balances))
	for i, item := range balances {
		response[i] = BalanceResponse{
			CarrierID:   item.CarrierID.String(),
			CarrierName: item.CarrierName,
			Balance:     item.Balance.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetMovements handles GET /api/v1/carriers/{carrierId}/movements.
// Optional query parameters: type, from (inclusive), to (exclusive), and
// unsettled=true to list only movements not yet covered by a payment.
func (s *Server) GetMovements(ctx echo.Context) error {
	carrierID, err := pathUUID(ctx, "carrierId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	movementType := ledger.MovementTypeUnknown
	if raw := ctx.QueryParam("type"); raw != "" {
		movementType, err = ledger.MovementTypeFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid type: "+err.Error())
		}
	}

	var dateFrom, dateTo time.Time
	if raw := ctx.QueryParam("from"); raw != "" {
		if dateFrom, err = parseDate(raw); err != nil {
			return badRequest(ctx, err.Error())
		}
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		if dateTo, err = parseDate(raw); err != nil {
			return badRequest(ctx, err.Error())
		}
	}

	unsettledOnly := false
	if raw := ctx.QueryParam("unsettled"); raw != "" {
		if unsettledOnly, err = strconv.ParseBool(raw); err != nil {
			return badRequest(ctx, "invalid unsettled: "+err.Error())
		}
	}

	query, err := queries.NewGetMovementsQuery(carrierID, movementType, dateFrom, dateTo, unsettledOnly)
	if err != nil {
		return respondError(ctx, err)
	}

	movements, err := s.getMovementsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]MovementResponse, len(movements))
	for i, item := range movements {
		response[i] = MovementResponse{
			MovementID:   item.MovementID.String(),
			MovementType: item.MovementType,
			Amount:       item.Amount.String(),
			Description:  item.Description,
			SettlementID: optionalIDString(item.SettlementID),
			PaymentID:    optionalIDString(item.PaymentID),
			CreatedAt:    item.CreatedAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateAdjustment handles POST /api/v1/carriers/{carrierId}/adjustments.
func (s *Server) CreateAdjustment(ctx echo.Context) error {
	carrierID, err := pathUUID(ctx, "carrierId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CreateAdjustmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	amount, err := kernel.NewMoneyFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "invalid amount: "+err.Error())
	}

	movementID := kernel.NewUUID()

	cmd, err := commands.NewCreateAdjustmentCommand(movementID, carrierID, amount, req.Description)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createAdjustmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateAdjustmentResponse{MovementID: movementID.String()})
}

func optionalIDString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	formatted := id.String()
	return &formatted
}
