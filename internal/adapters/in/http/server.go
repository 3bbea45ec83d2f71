// Package http exposes the settlement engine over a REST API.
// Handlers translate JSON requests into commands and queries and map the
// application error taxonomy onto HTTP statuses.
package http

import (
	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createSessionHandler         commands.CreateDispatchSessionCommandHandler
	markDispatchedHandler        commands.MarkDispatchedCommandHandler
	abandonSessionHandler        commands.AbandonSessionCommandHandler
	reconcileSessionHandler      commands.ReconcileSessionCommandHandler
	registerPaymentHandler       commands.RegisterPaymentCommandHandler
	acknowledgeSettlementHandler commands.AcknowledgeSettlementCommandHandler
	createAdjustmentHandler      commands.CreateAdjustmentCommandHandler
	createZoneHandler            commands.CreateZoneCommandHandler
	updateZoneHandler            commands.UpdateZoneCommandHandler
	deleteZoneHandler            commands.DeleteZoneCommandHandler

	// Query handlers
	pendingReconciliationHandler   queries.GetPendingReconciliationQueryHandler
	ordersForReconciliationHandler queries.GetOrdersForReconciliationQueryHandler
	calculateFeeHandler            queries.CalculateFeeQueryHandler
	getBalancesHandler             queries.GetBalancesQueryHandler
	getMovementsHandler            queries.GetMovementsQueryHandler

	// Draft storage for in-progress reconciliations
	draftStore ports.DraftStore
}

// NewServer creates an HTTP server with the required handlers.
func NewServer(
	createSessionHandler commands.CreateDispatchSessionCommandHandler,
	markDispatchedHandler commands.MarkDispatchedCommandHandler,
	abandonSessionHandler commands.AbandonSessionCommandHandler,
	reconcileSessionHandler commands.ReconcileSessionCommandHandler,
	registerPaymentHandler commands.RegisterPaymentCommandHandler,
	acknowledgeSettlementHandler commands.AcknowledgeSettlementCommandHandler,
	createAdjustmentHandler commands.CreateAdjustmentCommandHandler,
	createZoneHandler commands.CreateZoneCommandHandler,
	updateZoneHandler commands.UpdateZoneCommandHandler,
	deleteZoneHandler commands.DeleteZoneCommandHandler,
	pendingReconciliationHandler queries.GetPendingReconciliationQueryHandler,
	ordersForReconciliationHandler queries.GetOrdersForReconciliationQueryHandler,
	calculateFeeHandler queries.CalculateFeeQueryHandler,
	getBalancesHandler queries.GetBalancesQueryHandler,
	getMovementsHandler queries.GetMovementsQueryHandler,
	draftStore ports.DraftStore,
) *Server {
	return &Server{
		createSessionHandler:           createSessionHandler,
		markDispatchedHandler:          markDispatchedHandler,
		abandonSessionHandler:          abandonSessionHandler,
		reconcileSessionHandler:        reconcileSessionHandler,
		registerPaymentHandler:         registerPaymentHandler,
		acknowledgeSettlementHandler:   acknowledgeSettlementHandler,
		createAdjustmentHandler:        createAdjustmentHandler,
		createZoneHandler:              createZoneHandler,
		updateZoneHandler:              updateZoneHandler,
		deleteZoneHandler:              deleteZoneHandler,
		pendingReconciliationHandler:   pendingReconciliationHandler,
		ordersForReconciliationHandler: ordersForReconciliationHandler,
		calculateFeeHandler:            calculateFeeHandler,
		getBalancesHandler:             getBalancesHandler,
		getMovementsHandler:            getMovementsHandler,
		draftStore:                     draftStore,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/sessions", s.CreateSession)
	api.POST("/sessions/:sessionId/dispatch", s.DispatchSession)
	api.POST("/sessions/:sessionId/abandon", s.AbandonSession)
	api.POST("/sessions/:sessionId/reconcile", s.ReconcileSession)
	api.GET("/sessions/:sessionId/orders", s.GetSessionOrders)

	api.PUT("/sessions/:sessionId/draft", s.SaveDraft)
	api.GET("/sessions/:sessionId/draft", s.GetDraft)
	api.DELETE("/sessions/:sessionId/draft", s.DeleteDraft)

	api.GET("/reconciliation/pending", s.GetPendingReconciliation)

	api.POST("/payments", s.RegisterPayment)
	api.POST("/settlements/:settlementId/acknowledge", s.AcknowledgeSettlement)

	api.POST("/carriers/:carrierId/zones", s.CreateZone)
	api.PUT("/carriers/:carrierId/zones/:zoneId", s.UpdateZone)
	api.DELETE("/carriers/:carrierId/zones/:zoneId", s.DeleteZone)
	api.GET("/carriers/:carrierId/fee", s.CalculateFee)
	api.GET("/carriers/:carrierId/movements", s.GetMovements)
	api.POST("/carriers/:carrierId/adjustments", s.CreateAdjustment)

	api.GET("/balances", s.GetBalances)
}
