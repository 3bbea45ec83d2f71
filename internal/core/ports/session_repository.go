package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/session"
)

// SessionRepository is the persistence contract for dispatch session
// aggregates and their order lines.
type SessionRepository interface {
	// Add persists a new dispatch session with all its orders.
	Add(ctx context.Context, aggregate *session.DispatchSession) error

	// Update persists changes to an existing session and its orders.
	Update(ctx context.Context, aggregate *session.DispatchSession) error

	// UpdateGuarded persists the session only if its stored status still
	// equals expected. Returns errs.ConflictError when another transaction
	// advanced the session first. This is the concurrency guard for
	// reconciliation: two concurrent reconcile calls on the same session
	// must produce exactly one settlement.
	UpdateGuarded(ctx context.Context, aggregate *session.DispatchSession, expected session.Status) error

	// Get retrieves a session with all its orders.
	// Returns errs.ObjectNotFoundError when the session does not exist.
	Get(ctx context.Context, id kernel.UUID) (*session.DispatchSession, error)

	// GetAllInStatus retrieves all sessions currently in the given status,
	// oldest dispatch date first.
	GetAllInStatus(ctx context.Context, status session.Status) ([]*session.DispatchSession, error)

	// FindOrdersInNonTerminalSessions returns the subset of the given order
	// IDs that already belong to an open, dispatched or reconciled session.
	// Used to enforce order exclusivity when creating a session.
	FindOrdersInNonTerminalSessions(ctx context.Context, orderIDs []kernel.UUID) ([]kernel.UUID, error)
}
