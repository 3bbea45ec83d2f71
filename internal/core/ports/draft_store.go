package ports

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/kernel"
)

// DraftOutcome is one order line of an in-progress reconciliation draft.
type DraftOutcome struct {
	OrderID         string `json:"order_id"`
	Delivered       bool   `json:"delivered"`
	FailureReason   string `json:"failure_reason,omitempty"`
	OverridePrepaid bool   `json:"override_prepaid,omitempty"`
}

// ReconciliationDraft is a non-authoritative snapshot of reconciliation
// input, saved while a clerk works through a session. Drafts expire on
// their own and never touch the ledger; submitting a reconciliation always
// goes through the reconcile command with full validation.
type ReconciliationDraft struct {
	SessionID      string         `json:"session_id"`
	Outcomes       []DraftOutcome `json:"outcomes"`
	TotalCollected string         `json:"total_collected,omitempty"`
	SavedAt        time.Time      `json:"saved_at"`
}

// DraftStore is a TTL-backed cache for reconciliation drafts keyed by
// session. Missing drafts surface as errs.ObjectNotFoundError.
type DraftStore interface {
	// Save stores the draft, replacing any previous one for the session.
	Save(ctx context.Context, sessionID kernel.UUID, draft ReconciliationDraft) error

	// Get retrieves the current draft for a session.
	Get(ctx context.Context, sessionID kernel.UUID) (ReconciliationDraft, error)

	// Delete removes the draft. Deleting a missing draft is not an error.
	Delete(ctx context.Context, sessionID kernel.UUID) error
}
