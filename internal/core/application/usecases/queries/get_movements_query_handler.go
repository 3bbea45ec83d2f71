package queries

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/core/domain/model/settlement"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetMovementsQueryHandler reads a carrier's ledger history, newest first.
type GetMovementsQueryHandler struct {
	db *gorm.DB
}

// NewGetMovementsQueryHandler creates a handler for the ledger history query.
func NewGetMovementsQueryHandler(db *gorm.DB) GetMovementsQueryHandler {
	return GetMovementsQueryHandler{db: db}
}

// Handle executes the ledger history query with the query's filters applied.
func (h GetMovementsQueryHandler) Handle(
	ctx context.Context,
	query GetMovementsQuery,
) ([]GetMovementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			movement_type,
			amount,
			description,
			settlement_id,
			payment_id,
			created_at
		FROM ledger_movements
		WHERE carrier_id = ?`
	args := []any{query.CarrierID().Bytes()}

	if query.MovementType() != ledger.MovementTypeUnknown {
		sql += ` AND movement_type = ?`
		args = append(args, query.MovementType().String())
	}
	if !query.DateFrom().IsZero() {
		sql += ` AND created_at >= ?`
		args = append(args, query.DateFrom())
	}
	if !query.DateTo().IsZero() {
		sql += ` AND created_at < ?`
		args = append(args, query.DateTo())
	}
	if query.UnsettledOnly() {
		sql += ` AND payment_id IS NULL
			AND (settlement_id IS NULL
				OR settlement_id NOT IN (SELECT id FROM settlements WHERE status = ?))`
		args = append(args, settlement.Paid.String())
	}
	sql += ` ORDER BY created_at DESC, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]GetMovementsQueryResponse, 0)

	for rows.Next() {
		var resp GetMovementsQueryResponse
		var movementID uuid.UUID
		var settlementID, paymentID *uuid.UUID
		var amount decimal.Decimal

		err = rows.Scan(
			&movementID,
			&resp.MovementType,
			&amount,
			&resp.Description,
			&settlementID,
			&paymentID,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.MovementID, err = kernel.UUIDFromBytes(movementID[:]); err != nil {
			return nil, err
		}
		resp.Amount = kernel.NewMoneyFromDecimal(amount)
		if resp.SettlementID, err = optionalUUID(settlementID); err != nil {
			return nil, err
		}
		if resp.PaymentID, err = optionalUUID(paymentID); err != nil {
			return nil, err
		}

		movements = append(movements, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movements, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
