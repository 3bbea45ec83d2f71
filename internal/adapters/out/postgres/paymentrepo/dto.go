// Package paymentrepo persists carrier payments. Payments are immutable once
// recorded, so the repository exposes no update path.
package paymentrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO is the database representation of a carrier payment.
type PaymentDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CarrierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Direction    string          `gorm:"type:varchar(32);not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Method       string          `gorm:"type:varchar(64);not null"`
	Reference    string          `gorm:"type:varchar(255)"`
	Notes        string          `gorm:"type:text"`
	SettlementID *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentDate  time.Time       `gorm:"not null"`
}

// TableName maps the DTO to the carrier_payments table.
func (PaymentDTO) TableName() string {
	return "carrier_payments"
}

func fromDomain(aggregate *payment.CarrierPayment) PaymentDTO {
	var settlementID *uuid.UUID
	if aggregate.SettlementID() != nil {
		raw := aggregate.SettlementID().Bytes()
		settlementID = &raw
	}

	return PaymentDTO{
		ID:           aggregate.ID().Bytes(),
		CarrierID:    aggregate.CarrierID().Bytes(),
		Direction:    aggregate.Direction().String(),
		Amount:       aggregate.Amount().Decimal(),
		Method:       aggregate.Method(),
		Reference:    aggregate.Reference(),
		Notes:        aggregate.Notes(),
		SettlementID: settlementID,
		PaymentDate:  aggregate.PaymentDate(),
	}
}

func toDomain(dto PaymentDTO) (*payment.CarrierPayment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	direction, err := payment.DirectionFromString(dto.Direction)
	if err != nil {
		return nil, err
	}

	var settlementID *kernel.UUID
	if dto.SettlementID != nil {
		sid, sidErr := kernel.UUIDFromBytes(dto.SettlementID[:])
		if sidErr != nil {
			return nil, sidErr
		}
		settlementID = &sid
	}

	return payment.RestoreCarrierPayment(
		id, carrierID, direction,
		kernel.NewMoneyFromDecimal(dto.Amount),
		dto.Method, dto.Reference, dto.Notes,
		settlementID, dto.PaymentDate)
}
