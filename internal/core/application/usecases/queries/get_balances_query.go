package queries

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrGetBalancesQueryIsNotConstructed = errors.New(
	"GetBalancesQuery must be created via NewGetBalancesQuery constructor",
)

// GetBalancesQuery reports the net ledger position of every carrier.
// Positive balance = the carrier owes the store.
type GetBalancesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBalancesQuery creates a query for per-carrier balances.
func NewGetBalancesQuery() GetBalancesQuery {
	return GetBalancesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetBalancesQuery) Validate() error {
	return q.guard.Validate(ErrGetBalancesQueryIsNotConstructed)
}

// GetBalancesQueryResponse is one carrier's net position.
type GetBalancesQueryResponse struct {
	CarrierID   kernel.UUID
	CarrierName string
	Balance     kernel.Money
}
