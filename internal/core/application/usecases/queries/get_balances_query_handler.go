package queries

import (
	"context"

	"settlement/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetBalancesQueryHandler sums the ledger per carrier. Carriers without any
// movements appear with a zero balance.
type GetBalancesQueryHandler struct {
	db *gorm.DB
}

// NewGetBalancesQueryHandler creates a handler for the balances query.
func NewGetBalancesQueryHandler(db *gorm.DB) GetBalancesQueryHandler {
	return GetBalancesQueryHandler{db: db}
}

// Handle executes the balances query, sorted by carrier name.
func (h GetBalancesQueryHandler) Handle(
	ctx context.Context,
	query GetBalancesQuery,
) ([]GetBalancesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	balances := make([]GetBalancesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			COALESCE(SUM(m.amount), 0)
		FROM carriers c
		LEFT JOIN ledger_movements m ON m.carrier_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetBalancesQueryResponse
		var carrierID uuid.UUID
		var balance decimal.Decimal

		if err = rows.Scan(&carrierID, &resp.CarrierName, &balance); err != nil {
			return nil, err
		}

		if resp.CarrierID, err = kernel.UUIDFromBytes(carrierID[:]); err != nil {
			return nil, err
		}
		resp.Balance = kernel.NewMoneyFromDecimal(balance)

		balances = append(balances, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}
