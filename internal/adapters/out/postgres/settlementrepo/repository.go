package settlementrepo

import (
	"context"
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/settlement"
	"settlement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSettlementRepository implements ports.SettlementRepository using GORM.
type GormSettlementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is implemented by the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSettlementRepository creates a new GORM settlement repository.
func NewGormSettlementRepository(db *gorm.DB, tracker aggregateTracker) *GormSettlementRepository {
	return &GormSettlementRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new settlement. A duplicate code violates the unique index
// and surfaces as a ConflictError.
func (r *GormSettlementRepository) Add(ctx context.Context, aggregate *settlement.Settlement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("settlementCode", aggregate.Code(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists changes to an existing settlement.
func (r *GormSettlementRepository) Update(ctx context.Context, aggregate *settlement.Settlement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a settlement by id.
func (r *GormSettlementRepository) Get(ctx context.Context, id kernel.UUID) (*settlement.Settlement, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SettlementDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("settlement", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBySessionID retrieves the settlement produced by reconciling a session.
func (r *GormSettlementRepository) GetBySessionID(
	ctx context.Context,
	sessionID kernel.UUID,
) (*settlement.Settlement, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	var dto SettlementDTO
	if err := r.db.WithContext(ctx).First(&dto, "session_id = ?", sessionID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sessionId", sessionID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountByCarrierAndDate returns how many settlements already exist for the
// carrier on the given calendar date.
func (r *GormSettlementRepository) CountByCarrierAndDate(
	ctx context.Context,
	carrierID kernel.UUID,
	date time.Time,
) (int, error) {
	if err := carrierID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&SettlementDTO{}).
		Where("carrier_id = ? AND date = ?", carrierID.Bytes(), date.Format("2006-01-02")).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetAllInStatus retrieves settlements in the given status, oldest first.
func (r *GormSettlementRepository) GetAllInStatus(
	ctx context.Context,
	status settlement.Status,
) ([]*settlement.Settlement, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []SettlementDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	settlements := make([]*settlement.Settlement, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, aggregate)
	}

	return settlements, nil
}
