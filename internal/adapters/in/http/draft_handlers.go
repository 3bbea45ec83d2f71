package http

import (
	"net/http"
	"time"

	"settlement/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// SaveDraftRequest is the body of PUT /sessions/{sessionId}/draft.
type SaveDraftRequest struct {
	Outcomes       []OrderOutcomeRequest `json:"outcomes"`
	TotalCollected string                `json:"total_collected,omitempty"`
}

// SaveDraft handles PUT /api/v1/sessions/{sessionId}/draft. Drafts are
// scratch space and accepted as-is; full validation happens on reconcile.
func (s *Server) SaveDraft(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req SaveDraftRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	outcomes := make([]ports.DraftOutcome, len(req.Outcomes))
	for i, line := range req.Outcomes {
		outcomes[i] = ports.DraftOutcome{
			OrderID:         line.OrderID,
			Delivered:       line.Delivered,
			FailureReason:   line.FailureReason,
			OverridePrepaid: line.OverridePrepaid,
		}
	}

	draft := ports.ReconciliationDraft{
		SessionID:      sessionID.String(),
		Outcomes:       outcomes,
		TotalCollected: req.TotalCollected,
		SavedAt:        time.Now().UTC(),
	}

	if err = s.draftStore.Save(ctx.Request().Context(), sessionID, draft); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDraft handles GET /api/v1/sessions/{sessionId}/draft.
func (s *Server) GetDraft(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	draft, err := s.draftStore.Get(ctx.Request().Context(), sessionID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, draft)
}

// DeleteDraft handles DELETE /api/v1/sessions/{sessionId}/draft.
func (s *Server) DeleteDraft(ctx echo.Context) error {
	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.draftStore.Delete(ctx.Request().Context(), sessionID); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
