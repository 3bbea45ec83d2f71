package queries

import (
	"context"

	"settlement/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersForReconciliationQueryHandler reads a session's order sheet.
type GetOrdersForReconciliationQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersForReconciliationQueryHandler creates a handler for the order sheet query.
func NewGetOrdersForReconciliationQueryHandler(db *gorm.DB) GetOrdersForReconciliationQueryHandler {
	return GetOrdersForReconciliationQueryHandler{db: db}
}

// Handle executes the order sheet query, ordered by destination city.
func (h GetOrdersForReconciliationQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForReconciliationQuery,
) ([]GetOrdersForReconciliationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersForReconciliationQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			cod_amount,
			prepaid,
			override_prepaid,
			destination_city,
			shipping_cost,
			zone_name,
			delivery_result,
			failure_reason
		FROM session_orders
		WHERE session_id = ?
		ORDER BY destination_city, order_id
	`, query.SessionID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrdersForReconciliationQueryResponse
		var orderID uuid.UUID
		var codAmount decimal.Decimal
		var shippingCost *decimal.Decimal

		err = rows.Scan(
			&orderID,
			&codAmount,
			&resp.Prepaid,
			&resp.OverridePrepaid,
			&resp.DestinationCity,
			&shippingCost,
			&resp.ZoneName,
			&resp.DeliveryResult,
			&resp.FailureReason,
		)
		if err != nil {
			return nil, err
		}

		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		resp.CODAmount = kernel.NewMoneyFromDecimal(codAmount)
		if shippingCost != nil {
			cost := kernel.NewMoneyFromDecimal(*shippingCost)
			resp.ShippingCost = &cost
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
