package ledgerrepo

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/settlement"
	"settlement/internal/core/ports"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM.
// It deliberately has no update or delete method.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Add appends a movement to the ledger.
func (r *GormLedgerRepository) Add(ctx context.Context, movement *ledger.Movement) error {
	if err := movement.Validate(); err != nil {
		return err
	}

	dto := fromDomain(movement)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByCarrier retrieves a carrier's movements matching the filter, newest first.
func (r *GormLedgerRepository) GetByCarrier(
	ctx context.Context,
	carrierID kernel.UUID,
	filter ports.MovementFilter,
) ([]*ledger.Movement, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("carrier_id = ?", carrierID.Bytes())
	if filter.Type != ledger.MovementTypeUnknown {
		query = query.Where("movement_type = ?", filter.Type.String())
	}
	if !filter.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		query = query.Where("created_at < ?", filter.DateTo)
	}

	var dtos []MovementDTO
	if err := query.Order("created_at DESC, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetUnsettled retrieves a carrier's movements not yet covered by a carrier
// payment, newest first. A movement counts as covered once it carries a
// payment reference or once its settlement has been fully paid.
func (r *GormLedgerRepository) GetUnsettled(
	ctx context.Context,
	carrierID kernel.UUID,
) ([]*ledger.Movement, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MovementDTO
	err := r.db.WithContext(ctx).
		Where("carrier_id = ?", carrierID.Bytes()).
		Where("payment_id IS NULL").
		Where("settlement_id IS NULL OR settlement_id NOT IN (SELECT id FROM settlements WHERE status = ?)",
			settlement.Paid.String()).
		Order("created_at DESC, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// Balance returns the signed sum of all movements for a carrier.
func (r *GormLedgerRepository) Balance(ctx context.Context, carrierID kernel.UUID) (kernel.Money, error) {
	if err := carrierID.Validate(); err != nil {
		return kernel.ZeroMoney(), err
	}

	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&MovementDTO{}).
		Where("carrier_id = ?", carrierID.Bytes()).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return kernel.ZeroMoney(), err
	}

	return kernel.NewMoneyFromDecimal(total), nil
}
