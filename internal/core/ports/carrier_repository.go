// Package ports defines the persistence contracts between the settlement
// domain and infrastructure. Adapters implement these interfaces; the
// application layer depends only on them.
package ports

import (
	"context"

	"settlement/internal/core/domain/model/carrier"
	"settlement/internal/core/domain/model/kernel"
)

// CarrierRepository is the persistence contract for carrier aggregates,
// including their delivery zones.
type CarrierRepository interface {
	// Add persists a new carrier aggregate.
	Add(ctx context.Context, aggregate *carrier.Carrier) error

	// Update persists changes to an existing carrier, reconciling its zone
	// collection (added, changed and removed zones).
	Update(ctx context.Context, aggregate *carrier.Carrier) error

	// Get retrieves a carrier with all its zones.
	// Returns errs.ObjectNotFoundError when the carrier does not exist.
	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)

	// GetAll retrieves every carrier with zones loaded.
	GetAll(ctx context.Context) ([]*carrier.Carrier, error)
}
