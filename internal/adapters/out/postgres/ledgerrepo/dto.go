// Package ledgerrepo persists the append-only carrier ledger. Movements are
// only ever inserted: there is no update path and no delete path.
package ledgerrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementDTO is the database representation of a ledger movement.
type MovementDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CarrierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementType string          `gorm:"type:varchar(32);not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	OrderID      *uuid.UUID      `gorm:"type:uuid"`
	SettlementID *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentID    *uuid.UUID      `gorm:"type:uuid"`
	Description  string          `gorm:"type:text"`
	CreatedAt    time.Time       `gorm:"not null;index"`
}

// TableName maps the DTO to the ledger_movements table.
func (MovementDTO) TableName() string {
	return "ledger_movements"
}

func fromDomain(movement *ledger.Movement) MovementDTO {
	return MovementDTO{
		ID:           movement.ID().Bytes(),
		CarrierID:    movement.CarrierID().Bytes(),
		MovementType: movement.Type().String(),
		Amount:       movement.Amount().Decimal(),
		OrderID:      optionalID(movement.OrderID()),
		SettlementID: optionalID(movement.SettlementID()),
		PaymentID:    optionalID(movement.PaymentID()),
		Description:  movement.Description(),
		CreatedAt:    movement.CreatedAt(),
	}
}

func toDomain(dto MovementDTO) (*ledger.Movement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	movementType, err := ledger.MovementTypeFromString(dto.MovementType)
	if err != nil {
		return nil, err
	}

	orderID, err := optionalUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	settlementID, err := optionalUUID(dto.SettlementID)
	if err != nil {
		return nil, err
	}
	paymentID, err := optionalUUID(dto.PaymentID)
	if err != nil {
		return nil, err
	}

	return ledger.RestoreMovement(
		id, carrierID, movementType,
		kernel.NewMoneyFromDecimal(dto.Amount),
		orderID, settlementID, paymentID,
		dto.Description, dto.CreatedAt)
}

func toDomainAll(dtos []MovementDTO) ([]*ledger.Movement, error) {
	movements := make([]*ledger.Movement, 0, len(dtos))
	for _, dto := range dtos {
		movement, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, nil
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
