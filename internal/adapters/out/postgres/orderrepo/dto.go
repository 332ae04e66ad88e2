// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// UserDTO is the customer account an order belongs to. Accounts are managed
// elsewhere; this module only reads the username.
type UserDTO struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"size:100;not null;uniqueIndex"`
}

func (UserDTO) TableName() string {
	return "users"
}

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as text; values other than completed and cancelled read as pending.
type OrderDTO struct {
	ID          int64           `gorm:"primaryKey"`
	UserID      int64           `gorm:"not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status      string          `gorm:"size:20;not null;index"`
	OrderDate   time.Time       `gorm:"not null"`
	Lines       []OrderLineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one line of an order with the unit price captured at placement.
type OrderLineDTO struct {
	ID       int64           `gorm:"primaryKey"`
	OrderID  int64           `gorm:"not null;index"`
	BookID   int64           `gorm:"not null;index"`
	Quantity int             `gorm:"not null;check:chk_order_details_quantity,quantity > 0"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_details"
}

func fromDomain(o *order.Order, lines []order.Line) OrderDTO {
	dto := OrderDTO{
		ID:          o.ID().Int64(),
		UserID:      o.CustomerID().Int64(),
		TotalAmount: o.TotalAmount(),
		Status:      o.Status().String(),
		OrderDate:   o.PlacedAt(),
		Lines:       make([]OrderLineDTO, 0, len(lines)),
	}
	for _, l := range lines {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			BookID:   l.BookID().Int64(),
			Quantity: l.Quantity(),
			Price:    l.UnitPrice(),
		})
	}
	return dto
}

// toDomain rebuilds the aggregate. A row that fails domain validation is
// reported as a storage problem, not as a caller mistake.
func toDomain(dto OrderDTO) (*order.Order, error) {
	o, err := order.RestoreOrder(
		kernel.ID(dto.ID),
		kernel.ID(dto.UserID),
		order.ParseStatus(dto.Status),
		dto.TotalAmount,
		dto.OrderDate,
	)
	if err != nil {
		return nil, fmt.Errorf("order #%d has invalid stored state: %v", dto.ID, err)
	}
	return o, nil
}
