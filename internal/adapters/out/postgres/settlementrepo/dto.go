// Package settlementrepo persists settlement records. The settlement code
// carries a unique index so concurrent reconciliations can never mint the
// same code twice.
package settlementrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/settlement"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementDTO is the database representation of a settlement record.
type SettlementDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code              string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	CarrierID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SessionID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date              time.Time       `gorm:"type:date;not null"`
	TotalOrders       int             `gorm:"not null"`
	TotalDelivered    int             `gorm:"not null"`
	TotalNotDelivered int             `gorm:"not null"`
	CODExpected       decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	CODCollected      decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	CarrierFees       decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	FailedFees        decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	NetReceivable     decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Discrepancy       decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	HasDiscrepancy    bool            `gorm:"not null"`
	DiscrepancyNotes  string          `gorm:"type:text"`
	Status            string          `gorm:"type:varchar(32);not null;index"`
	PaidAmount        decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	AcknowledgedAt    *time.Time
	CreatedAt         time.Time `gorm:"not null"`
}

// TableName maps the DTO to the settlements table.
func (SettlementDTO) TableName() string {
	return "settlements"
}

func fromDomain(aggregate *settlement.Settlement) SettlementDTO {
	totals := aggregate.Totals()

	return SettlementDTO{
		ID:                aggregate.ID().Bytes(),
		Code:              aggregate.Code(),
		CarrierID:         aggregate.CarrierID().Bytes(),
		SessionID:         aggregate.SessionID().Bytes(),
		Date:              aggregate.Date(),
		TotalOrders:       totals.TotalOrders,
		TotalDelivered:    totals.TotalDelivered,
		TotalNotDelivered: totals.TotalNotDelivered,
		CODExpected:       totals.CODExpected.Decimal(),
		CODCollected:      totals.CODCollected.Decimal(),
		CarrierFees:       totals.CarrierFees.Decimal(),
		FailedFees:        totals.FailedFees.Decimal(),
		NetReceivable:     totals.NetReceivable.Decimal(),
		Discrepancy:       totals.Discrepancy.Decimal(),
		HasDiscrepancy:    totals.HasDiscrepancy,
		DiscrepancyNotes:  totals.DiscrepancyNotes,
		Status:            aggregate.Status().String(),
		PaidAmount:        aggregate.PaidAmount().Decimal(),
		AcknowledgedAt:    aggregate.AcknowledgedAt(),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

func toDomain(dto SettlementDTO) (*settlement.Settlement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	sessionID, err := kernel.UUIDFromBytes(dto.SessionID[:])
	if err != nil {
		return nil, err
	}

	status, err := settlement.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	totals := settlement.Totals{
		TotalOrders:       dto.TotalOrders,
		TotalDelivered:    dto.TotalDelivered,
		TotalNotDelivered: dto.TotalNotDelivered,
		CODExpected:       kernel.NewMoneyFromDecimal(dto.CODExpected),
		CODCollected:      kernel.NewMoneyFromDecimal(dto.CODCollected),
		CarrierFees:       kernel.NewMoneyFromDecimal(dto.CarrierFees),
		FailedFees:        kernel.NewMoneyFromDecimal(dto.FailedFees),
		NetReceivable:     kernel.NewMoneyFromDecimal(dto.NetReceivable),
		Discrepancy:       kernel.NewMoneyFromDecimal(dto.Discrepancy),
		HasDiscrepancy:    dto.HasDiscrepancy,
		DiscrepancyNotes:  dto.DiscrepancyNotes,
	}

	return settlement.RestoreSettlement(
		id, dto.Code, carrierID, sessionID, dto.Date, totals,
		status, kernel.NewMoneyFromDecimal(dto.PaidAmount),
		dto.AcknowledgedAt, dto.CreatedAt)
}
