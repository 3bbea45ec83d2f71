package queries

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPendingReconciliationQueryHandler reads the reconciliation worklist.
// COD expectation counts only non-prepaid orders, matching the settlement
// calculation.
type GetPendingReconciliationQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingReconciliationQueryHandler creates a handler for the worklist query.
func NewGetPendingReconciliationQueryHandler(db *gorm.DB) GetPendingReconciliationQueryHandler {
	return GetPendingReconciliationQueryHandler{db: db}
}

// Handle executes the worklist query, oldest dispatch first.
func (h GetPendingReconciliationQueryHandler) Handle(
	ctx context.Context,
	query GetPendingReconciliationQuery,
) ([]GetPendingReconciliationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sessions := make([]GetPendingReconciliationQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.carrier_id,
			c.name,
			c.failed_attempt_fee_percent,
			s.dispatch_date,
			s.dispatched_at,
			COUNT(o.order_id),
			COALESCE(SUM(o.cod_amount) FILTER (WHERE NOT o.prepaid AND NOT o.override_prepaid), 0),
			COALESCE(SUM(o.cod_amount) FILTER (WHERE o.prepaid OR o.override_prepaid), 0)
		FROM dispatch_sessions s
		JOIN carriers c ON c.id = s.carrier_id
		LEFT JOIN session_orders o ON o.session_id = s.id
		WHERE s.status = ?
		GROUP BY s.id, s.carrier_id, c.name, c.failed_attempt_fee_percent, s.dispatch_date, s.dispatched_at
		ORDER BY s.dispatch_date, s.id
	`, session.Dispatched.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingReconciliationQueryResponse
		var sessionID, carrierID uuid.UUID
		var dispatchedAt *time.Time
		var codExpected, totalPrepaid decimal.Decimal

		err = rows.Scan(
			&sessionID,
			&carrierID,
			&resp.CarrierName,
			&resp.FailedAttemptFeePercent,
			&resp.DispatchDate,
			&dispatchedAt,
			&resp.TotalOrders,
			&codExpected,
			&totalPrepaid,
		)
		if err != nil {
			return nil, err
		}

		if resp.SessionID, err = kernel.UUIDFromBytes(sessionID[:]); err != nil {
			return nil, err
		}
		if resp.CarrierID, err = kernel.UUIDFromBytes(carrierID[:]); err != nil {
			return nil, err
		}
		resp.DispatchedAt = dispatchedAt
		resp.CODExpected = kernel.NewMoneyFromDecimal(codExpected)
		resp.TotalPrepaid = kernel.NewMoneyFromDecimal(totalPrepaid)

		sessions = append(sessions, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
