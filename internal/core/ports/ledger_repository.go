package ports

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
)

// MovementFilter narrows ledger listings. Zero values mean "no constraint".
type MovementFilter struct {
	Type     ledger.MovementType
	DateFrom time.Time
	DateTo   time.Time
}

// LedgerRepository is the persistence contract for the append-only carrier
// ledger. Movements are immutable once stored: there is no update and no
// delete, corrections enter as new adjustment movements.
type LedgerRepository interface {
	// Add appends a movement to the ledger.
	Add(ctx context.Context, movement *ledger.Movement) error

	// GetByCarrier retrieves a carrier's movements matching the filter,
	// newest first.
	GetByCarrier(ctx context.Context, carrierID kernel.UUID, filter MovementFilter) ([]*ledger.Movement, error)

	// GetUnsettled retrieves a carrier's movements not yet tied to a
	// carrier payment, newest first.
	GetUnsettled(ctx context.Context, carrierID kernel.UUID) ([]*ledger.Movement, error)

	// Balance returns the signed sum of all movements for a carrier.
	// Positive means the carrier owes the store.
	Balance(ctx context.Context, carrierID kernel.UUID) (kernel.Money, error)
}
