package sessionrepo

import (
	"context"
	"errors"
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/session"
	"settlement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSessionRepository implements ports.SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is implemented by the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new session with all its order lines.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.DispatchSession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists changes to a session and its orders.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.DispatchSession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateGuarded persists the session only while its stored status still equals
// expected. The status column acts as a compare-and-swap guard: when another
// transaction advanced the session first, zero rows match and the caller gets
// a ConflictError instead of a double write.
func (r *GormSessionRepository) UpdateGuarded(
	ctx context.Context,
	aggregate *session.DispatchSession,
	expected session.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	tx := r.db.WithContext(ctx)

	result := tx.Model(&SessionDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":         dto.Status,
			"notes":          dto.Notes,
			"abandon_reason": dto.AbandonReason,
			"dispatched_at":  dto.DispatchedAt,
			"reconciled_at":  dto.ReconciledAt,
			"settled_at":     dto.SettledAt,
			"abandoned_at":   dto.AbandonedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("session",
			fmt.Sprintf("status is no longer %s", expected))
	}

	for i := range dto.Orders {
		if err := tx.Save(&dto.Orders[i]).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session with all its order lines.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.DispatchSession, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	err := r.db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_orders.destination_city, session_orders.order_id")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves all sessions in the given status, oldest first.
func (r *GormSessionRepository) GetAllInStatus(
	ctx context.Context,
	status session.Status,
) ([]*session.DispatchSession, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []SessionDTO
	err := r.db.WithContext(ctx).
		Preload("Orders").
		Where("status = ?", status.String()).
		Order("dispatch_date, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*session.DispatchSession, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, aggregate)
	}

	return sessions, nil
}

// FindOrdersInNonTerminalSessions returns the subset of orderIDs that already
// belong to a session still in flight (Open, Dispatched or Reconciled).
func (r *GormSessionRepository) FindOrdersInNonTerminalSessions(
	ctx context.Context,
	orderIDs []kernel.UUID,
) ([]kernel.UUID, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	rawIDs := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		rawIDs = append(rawIDs, id.Bytes())
	}

	var found []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&SessionOrderDTO{}).
		Joins("JOIN dispatch_sessions ON dispatch_sessions.id = session_orders.session_id").
		Where("session_orders.order_id IN ?", rawIDs).
		Where("dispatch_sessions.status IN ?", []string{
			session.Open.String(),
			session.Dispatched.String(),
			session.Reconciled.String(),
		}).
		Pluck("session_orders.order_id", &found).Error
	if err != nil {
		return nil, err
	}

	busy := make([]kernel.UUID, 0, len(found))
	for _, raw := range found {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		busy = append(busy, id)
	}

	return busy, nil
}
