// Package sessionrepo persists dispatch session aggregates and their order lines.
package sessionrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionDTO is the database representation of a dispatch session.
type SessionDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	CarrierID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	DispatchDate  time.Time         `gorm:"type:date;not null"`
	Status        string            `gorm:"type:varchar(32);not null;index"`
	Notes         string            `gorm:"type:text"`
	AbandonReason string            `gorm:"type:text"`
	Orders        []SessionOrderDTO `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	DispatchedAt  *time.Time
	ReconciledAt  *time.Time
	SettledAt     *time.Time
	AbandonedAt   *time.Time
}

// TableName maps the DTO to the dispatch_sessions table.
func (SessionDTO) TableName() string {
	return "dispatch_sessions"
}

// SessionOrderDTO is the database representation of one order line inside a
// session. The order ID is the primary key: an order belongs to at most one
// session row at a time, and exclusivity across non-terminal sessions is
// checked by the repository.
type SessionOrderDTO struct {
	OrderID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	SessionID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	CODAmount       decimal.Decimal  `gorm:"type:numeric(19,4);not null"`
	Prepaid         bool             `gorm:"not null"`
	DestinationCity string           `gorm:"type:varchar(255);not null"`
	ShippingCost    *decimal.Decimal `gorm:"type:numeric(19,4)"`
	ZoneName        string           `gorm:"type:varchar(255)"`
	DeliveryResult  string           `gorm:"type:varchar(32);not null"`
	CollectedAmount decimal.Decimal  `gorm:"type:numeric(19,4);not null"`
	FailureReason   string           `gorm:"type:text"`
	OverridePrepaid bool             `gorm:"not null"`
}

// TableName maps the DTO to the session_orders table.
func (SessionOrderDTO) TableName() string {
	return "session_orders"
}

func fromDomain(aggregate *session.DispatchSession) SessionDTO {
	sessionID := aggregate.ID().Bytes()

	orders := make([]SessionOrderDTO, 0, len(aggregate.Orders()))
	for _, order := range aggregate.Orders() {
		var shippingCost *decimal.Decimal
		if order.ShippingCost() != nil {
			raw := order.ShippingCost().Decimal()
			shippingCost = &raw
		}

		orders = append(orders, SessionOrderDTO{
			OrderID:         order.OrderID().Bytes(),
			SessionID:       sessionID,
			CODAmount:       order.CODAmount().Decimal(),
			Prepaid:         order.Prepaid(),
			DestinationCity: order.DestinationCity(),
			ShippingCost:    shippingCost,
			ZoneName:        order.ZoneName(),
			DeliveryResult:  order.DeliveryResult().String(),
			CollectedAmount: order.CollectedAmount().Decimal(),
			FailureReason:   order.FailureReason(),
			OverridePrepaid: order.OverridePrepaid(),
		})
	}

	return SessionDTO{
		ID:            sessionID,
		CarrierID:     aggregate.CarrierID().Bytes(),
		DispatchDate:  aggregate.DispatchDate(),
		Status:        aggregate.Status().String(),
		Notes:         aggregate.Notes(),
		AbandonReason: aggregate.AbandonReason(),
		Orders:        orders,
		DispatchedAt:  aggregate.DispatchedAt(),
		ReconciledAt:  aggregate.ReconciledAt(),
		SettledAt:     aggregate.SettledAt(),
		AbandonedAt:   aggregate.AbandonedAt(),
	}
}

func toDomain(dto SessionDTO) (*session.DispatchSession, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	status, err := session.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	orders := make([]*session.SessionOrder, 0, len(dto.Orders))
	for _, orderDTO := range dto.Orders {
		order, orderErr := orderToDomain(orderDTO)
		if orderErr != nil {
			return nil, orderErr
		}
		orders = append(orders, order)
	}

	return session.RestoreDispatchSession(
		id, carrierID, dto.DispatchDate, status, orders,
		dto.Notes, dto.AbandonReason,
		dto.DispatchedAt, dto.ReconciledAt, dto.SettledAt, dto.AbandonedAt)
}

func orderToDomain(dto SessionOrderDTO) (*session.SessionOrder, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	result, err := session.DeliveryResultFromString(dto.DeliveryResult)
	if err != nil {
		return nil, err
	}

	var shippingCost *kernel.Money
	if dto.ShippingCost != nil {
		cost := kernel.NewMoneyFromDecimal(*dto.ShippingCost)
		shippingCost = &cost
	}

	return session.RestoreSessionOrder(
		orderID,
		kernel.NewMoneyFromDecimal(dto.CODAmount),
		dto.Prepaid,
		dto.DestinationCity,
		shippingCost,
		dto.ZoneName,
		result,
		kernel.NewMoneyFromDecimal(dto.CollectedAmount),
		dto.FailureReason,
		dto.OverridePrepaid)
}
