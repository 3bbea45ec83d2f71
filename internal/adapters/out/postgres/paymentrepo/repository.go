package paymentrepo

import (
	"context"
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/payment"
	"settlement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add persists a new carrier payment.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.CarrierPayment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a payment by id.
func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.CarrierPayment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBySettlementID retrieves all payments applied to a settlement, oldest first.
func (r *GormPaymentRepository) GetBySettlementID(
	ctx context.Context,
	settlementID kernel.UUID,
) ([]*payment.CarrierPayment, error) {
	if err := settlementID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Where("settlement_id = ?", settlementID.Bytes()).
		Order("payment_date, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	payments := make([]*payment.CarrierPayment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, aggregate)
	}

	return payments, nil
}
