// Package carrierrepo persists carrier aggregates and their delivery zones.
package carrierrepo

import (
	"settlement/internal/core/domain/model/carrier"
	"settlement/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CarrierDTO is the database representation of a carrier aggregate.
type CarrierDTO struct {
	ID                      uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name                    string           `gorm:"type:varchar(255);not null"`
	SettlementType          string           `gorm:"type:varchar(32);not null"`
	ChargesFailedAttempts   bool             `gorm:"not null"`
	FailedAttemptFeePercent int              `gorm:"type:int;not null"`
	PaymentSchedule         string           `gorm:"type:varchar(64)"`
	CoverageRate            *decimal.Decimal `gorm:"type:numeric(19,4)"`
	Zones                   []ZoneDTO        `gorm:"foreignKey:CarrierID;constraint:OnDelete:CASCADE"`
}

// TableName maps the DTO to the carriers table.
func (CarrierDTO) TableName() string {
	return "carriers"
}

// ZoneDTO is the database representation of a delivery zone.
type ZoneDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CarrierID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Code      string          `gorm:"type:varchar(64)"`
	Rate      decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	IsActive  bool            `gorm:"not null"`
}

// TableName maps the DTO to the carrier_zones table.
func (ZoneDTO) TableName() string {
	return "carrier_zones"
}

func fromDomain(aggregate *carrier.Carrier) CarrierDTO {
	carrierID := aggregate.ID().Bytes()

	zones := make([]ZoneDTO, 0, len(aggregate.Zones()))
	for _, zone := range aggregate.Zones() {
		zones = append(zones, ZoneDTO{
			ID:        zone.ID().Bytes(),
			CarrierID: carrierID,
			Name:      zone.Name(),
			Code:      zone.Code(),
			Rate:      zone.Rate().Decimal(),
			IsActive:  zone.IsActive(),
		})
	}

	var coverageRate *decimal.Decimal
	if aggregate.CoverageRate() != nil {
		raw := aggregate.CoverageRate().Decimal()
		coverageRate = &raw
	}

	return CarrierDTO{
		ID:                      carrierID,
		Name:                    aggregate.Name(),
		SettlementType:          aggregate.SettlementType().String(),
		ChargesFailedAttempts:   aggregate.ChargesFailedAttempts(),
		FailedAttemptFeePercent: aggregate.FailedAttemptFeePercent(),
		PaymentSchedule:         aggregate.PaymentSchedule(),
		CoverageRate:            coverageRate,
		Zones:                   zones,
	}
}

func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	settlementType, err := carrier.SettlementTypeFromString(dto.SettlementType)
	if err != nil {
		return nil, err
	}

	zones := make([]*carrier.Zone, 0, len(dto.Zones))
	for _, zoneDTO := range dto.Zones {
		zone, zoneErr := zoneToDomain(zoneDTO)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, zone)
	}

	var coverageRate *kernel.Money
	if dto.CoverageRate != nil {
		rate := kernel.NewMoneyFromDecimal(*dto.CoverageRate)
		coverageRate = &rate
	}

	return carrier.RestoreCarrier(
		id, dto.Name, settlementType, dto.ChargesFailedAttempts,
		dto.FailedAttemptFeePercent, dto.PaymentSchedule, coverageRate, zones)
}

func zoneToDomain(dto ZoneDTO) (*carrier.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return carrier.NewZone(id, dto.Name, dto.Code, kernel.NewMoneyFromDecimal(dto.Rate), dto.IsActive)
}
