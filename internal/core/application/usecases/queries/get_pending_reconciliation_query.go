// Package queries contains the read side of the settlement engine.
// Queries bypass the aggregates and read optimized models straight from the
// database with raw SQL.
package queries

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrGetPendingReconciliationQueryIsNotConstructed = errors.New(
	"GetPendingReconciliationQuery must be created via NewGetPendingReconciliationQuery constructor",
)

// GetPendingReconciliationQuery lists dispatched sessions awaiting their
// end-of-day reconciliation, the daily worklist of the settlement clerk.
type GetPendingReconciliationQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingReconciliationQuery creates a query for the reconciliation worklist.
func NewGetPendingReconciliationQuery() GetPendingReconciliationQuery {
	return GetPendingReconciliationQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingReconciliationQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingReconciliationQueryIsNotConstructed)
}

// GetPendingReconciliationQueryResponse is one dispatched session in the
// worklist, with the amounts the clerk should expect back and the carrier's
// failed-attempt fee for reference during outcome entry.
type GetPendingReconciliationQueryResponse struct {
	SessionID               kernel.UUID
	CarrierID               kernel.UUID
	CarrierName             string
	FailedAttemptFeePercent int
	DispatchDate            time.Time
	DispatchedAt            *time.Time
	TotalOrders             int
	CODExpected             kernel.Money
	TotalPrepaid            kernel.Money
}
