package queries

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrGetOrdersForReconciliationQueryIsNotConstructed = errors.New(
	"GetOrdersForReconciliationQuery must be created via NewGetOrdersForReconciliationQuery constructor",
)

// GetOrdersForReconciliationQuery lists the orders of one session with the
// data the clerk needs to record outcomes: COD amounts, fee snapshots and
// current delivery results.
type GetOrdersForReconciliationQuery struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersForReconciliationQuery creates a query for a session's order sheet.
func NewGetOrdersForReconciliationQuery(sessionID kernel.UUID) (GetOrdersForReconciliationQuery, error) {
	q := GetOrdersForReconciliationQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setSessionID(sessionID); err != nil {
		return GetOrdersForReconciliationQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersForReconciliationQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersForReconciliationQueryIsNotConstructed)
}

// SessionID returns the session whose orders are listed.
func (q GetOrdersForReconciliationQuery) SessionID() kernel.UUID {
	return q.sessionID
}

func (q *GetOrdersForReconciliationQuery) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	q.sessionID = sessionID
	return nil
}

// GetOrdersForReconciliationQueryResponse is one order line of the sheet.
type GetOrdersForReconciliationQueryResponse struct {
	OrderID         kernel.UUID
	CODAmount       kernel.Money
	Prepaid         bool
	OverridePrepaid bool
	DestinationCity string
	ShippingCost    *kernel.Money
	ZoneName        string
	DeliveryResult  string
	FailureReason   string
}
