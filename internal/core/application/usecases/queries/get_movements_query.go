package queries

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"
	"settlement/internal/pkg/guard"
)

var ErrGetMovementsQueryIsNotConstructed = errors.New(
	"GetMovementsQuery must be created via NewGetMovementsQuery constructor",
)

// GetMovementsQuery lists a carrier's ledger history with optional filters.
// Zero-valued filters mean "no constraint".
type GetMovementsQuery struct { //nolint:recvcheck //using for validation
	carrierID     kernel.UUID
	movementType  ledger.MovementType
	dateFrom      time.Time
	dateTo        time.Time
	unsettledOnly bool

	guard guard.ConstructorGuard
}

// NewGetMovementsQuery creates a query for a carrier's ledger history.
// movementType may be ledger.MovementTypeUnknown to include all types.
// With unsettledOnly set, only movements not yet covered by a carrier
// payment are listed.
func NewGetMovementsQuery(
	carrierID kernel.UUID,
	movementType ledger.MovementType,
	dateFrom time.Time,
	dateTo time.Time,
	unsettledOnly bool,
) (GetMovementsQuery, error) {
	q := GetMovementsQuery{
		movementType:  movementType,
		dateFrom:      dateFrom,
		dateTo:        dateTo,
		unsettledOnly: unsettledOnly,
		guard:         guard.NewConstructorGuard(),
	}

	if err := q.setCarrierID(carrierID); err != nil {
		return GetMovementsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMovementsQuery) Validate() error {
	return q.guard.Validate(ErrGetMovementsQueryIsNotConstructed)
}

// CarrierID returns the carrier whose ledger is listed.
func (q GetMovementsQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

// MovementType returns the type filter, MovementTypeUnknown for all.
func (q GetMovementsQuery) MovementType() ledger.MovementType {
	return q.movementType
}

// DateFrom returns the inclusive lower bound, zero for none.
func (q GetMovementsQuery) DateFrom() time.Time {
	return q.dateFrom
}

// DateTo returns the exclusive upper bound, zero for none.
func (q GetMovementsQuery) DateTo() time.Time {
	return q.dateTo
}

// UnsettledOnly reports whether the listing is restricted to movements
// not yet covered by a carrier payment.
func (q GetMovementsQuery) UnsettledOnly() bool {
	return q.unsettledOnly
}

func (q *GetMovementsQuery) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	q.carrierID = carrierID
	return nil
}

// GetMovementsQueryResponse is one ledger movement in the listing.
type GetMovementsQueryResponse struct {
	MovementID   kernel.UUID
	MovementType string
	Amount       kernel.Money
	Description  string
	SettlementID *kernel.UUID
	PaymentID    *kernel.UUID
	CreatedAt    time.Time
}
