package queries

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrCalculateFeeQueryIsNotConstructed = errors.New(
		"CalculateFeeQuery must be created via NewCalculateFeeQuery constructor",
	)
	ErrDestinationCityIsRequired = errors.New("destination city is required")
)

// CalculateFeeQuery previews the shipping fee a carrier would charge for a
// destination, without creating anything. Useful while composing a session.
type CalculateFeeQuery struct { //nolint:recvcheck //using for validation
	carrierID       kernel.UUID
	destinationCity string

	guard guard.ConstructorGuard
}

// NewCalculateFeeQuery creates a fee preview query.
func NewCalculateFeeQuery(carrierID kernel.UUID, destinationCity string) (CalculateFeeQuery, error) {
	q := CalculateFeeQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setCarrierID(carrierID),
		q.setDestinationCity(destinationCity),
	); err != nil {
		return CalculateFeeQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q CalculateFeeQuery) Validate() error {
	return q.guard.Validate(ErrCalculateFeeQueryIsNotConstructed)
}

// CarrierID returns the carrier whose rates apply.
func (q CalculateFeeQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

// DestinationCity returns the destination to price.
func (q CalculateFeeQuery) DestinationCity() string {
	return q.destinationCity
}

func (q *CalculateFeeQuery) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	q.carrierID = carrierID
	return nil
}

func (q *CalculateFeeQuery) setDestinationCity(destinationCity string) error {
	if destinationCity == "" {
		return ErrDestinationCityIsRequired
	}

	q.destinationCity = destinationCity
	return nil
}

// CalculateFeeQueryResponse is the priced quote.
type CalculateFeeQueryResponse struct {
	Rate kernel.Money

	// FeeSource names the rule that produced the rate: zone, coverage or default.
	FeeSource string

	// ZoneName is set when a zone matched.
	ZoneName string
}
