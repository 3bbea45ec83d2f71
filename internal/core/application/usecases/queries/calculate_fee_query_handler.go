package queries

import (
	"context"

	"settlement/internal/core/domain/model/carrier"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/services"
	"settlement/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CalculateFeeQueryHandler prices a destination against a carrier's zones.
// It reconstructs the carrier aggregate from the read model and delegates to
// the same resolver used at dispatch time, so the preview always matches the
// fee that would be snapshotted.
type CalculateFeeQueryHandler struct {
	db       *gorm.DB
	resolver services.FeeResolver
}

// NewCalculateFeeQueryHandler creates a handler for fee previews.
func NewCalculateFeeQueryHandler(db *gorm.DB, resolver services.FeeResolver) CalculateFeeQueryHandler {
	return CalculateFeeQueryHandler{db: db, resolver: resolver}
}

// Handle executes the fee preview.
func (h CalculateFeeQueryHandler) Handle(
	ctx context.Context,
	query CalculateFeeQuery,
) (CalculateFeeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CalculateFeeQueryResponse{}, err
	}

	aggregate, err := h.loadCarrier(ctx, query.CarrierID())
	if err != nil {
		return CalculateFeeQueryResponse{}, err
	}

	quote, err := h.resolver.Resolve(aggregate, query.DestinationCity())
	if err != nil {
		return CalculateFeeQueryResponse{}, err
	}

	return CalculateFeeQueryResponse{
		Rate:      quote.Rate,
		FeeSource: string(quote.Source),
		ZoneName:  quote.ZoneName,
	}, nil
}

func (h CalculateFeeQueryHandler) loadCarrier(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	var row struct {
		Name                    string
		SettlementType          string
		ChargesFailedAttempts   bool
		FailedAttemptFeePercent int
		PaymentSchedule         string
		CoverageRate            *decimal.Decimal
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			settlement_type,
			charges_failed_attempts,
			failed_attempt_fee_percent,
			payment_schedule,
			coverage_rate
		FROM carriers
		WHERE id = ?
	`, id.Bytes()).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.Name == "" {
		return nil, errs.NewObjectNotFoundError("carrierId", id)
	}

	settlementType, err := carrier.SettlementTypeFromString(row.SettlementType)
	if err != nil {
		return nil, err
	}

	zones, err := h.loadZones(ctx, id)
	if err != nil {
		return nil, err
	}

	var coverageRate *kernel.Money
	if row.CoverageRate != nil {
		rate := kernel.NewMoneyFromDecimal(*row.CoverageRate)
		coverageRate = &rate
	}

	return carrier.RestoreCarrier(
		id, row.Name, settlementType, row.ChargesFailedAttempts,
		row.FailedAttemptFeePercent, row.PaymentSchedule, coverageRate, zones)
}

func (h CalculateFeeQueryHandler) loadZones(ctx context.Context, carrierID kernel.UUID) ([]*carrier.Zone, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, code, rate, is_active
		FROM carrier_zones
		WHERE carrier_id = ?
		ORDER BY name
	`, carrierID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	zones := make([]*carrier.Zone, 0)
	for rows.Next() {
		var id uuid.UUID
		var name, code string
		var rate decimal.Decimal
		var isActive bool

		if err = rows.Scan(&id, &name, &code, &rate, &isActive); err != nil {
			return nil, err
		}

		zoneID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		zone, err := carrier.NewZone(zoneID, name, code, kernel.NewMoneyFromDecimal(rate), isActive)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return zones, nil
}
