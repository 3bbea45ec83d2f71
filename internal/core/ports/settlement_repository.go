package ports

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/settlement"
)

// SettlementRepository is the persistence contract for settlement records.
type SettlementRepository interface {
	// Add persists a new settlement. The settlement code carries a unique
	// index; a duplicate code surfaces as errs.ConflictError so the caller
	// can regenerate the sequence and retry.
	Add(ctx context.Context, aggregate *settlement.Settlement) error

	// Update persists changes to an existing settlement.
	Update(ctx context.Context, aggregate *settlement.Settlement) error

	// Get retrieves a settlement by id.
	// Returns errs.ObjectNotFoundError when the settlement does not exist.
	Get(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error)

	// GetBySessionID retrieves the settlement produced by reconciling the
	// given session, if any.
	GetBySessionID(ctx context.Context, sessionID kernel.UUID) (*settlement.Settlement, error)

	// CountByCarrierAndDate returns how many settlements already exist for
	// the carrier on the given date. Used to derive the next code sequence.
	CountByCarrierAndDate(ctx context.Context, carrierID kernel.UUID, date time.Time) (int, error)

	// GetAllInStatus retrieves settlements in the given status, oldest first.
	GetAllInStatus(ctx context.Context, status settlement.Status) ([]*settlement.Settlement, error)
}
