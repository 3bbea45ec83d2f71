package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/payment"
)

// PaymentRepository is the persistence contract for carrier payments.
// Payments are immutable once recorded.
type PaymentRepository interface {
	// Add persists a new carrier payment.
	Add(ctx context.Context, aggregate *payment.CarrierPayment) error

	// Get retrieves a payment by id.
	// Returns errs.ObjectNotFoundError when the payment does not exist.
	Get(ctx context.Context, id kernel.UUID) (*payment.CarrierPayment, error)

	// GetBySettlementID retrieves all payments applied to a settlement,
	// oldest first.
	GetBySettlementID(ctx context.Context, settlementID kernel.UUID) ([]*payment.CarrierPayment, error)
}
