package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
		"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
	)
)

// GetOrderDetailsQuery retrieves one order with its lines.
type GetOrderDetailsQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetOrderDetailsQuery rejects non-positive ids before any database access.
func NewGetOrderDetailsQuery(orderID int64) (GetOrderDetailsQuery, error) {
	id, err := kernel.NewID(orderID)
	if err != nil {
		return GetOrderDetailsQuery{}, err
	}
	return GetOrderDetailsQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

func (q GetOrderDetailsQuery) OrderID() kernel.ID {
	return q.orderID
}

// GetOrderDetailsQueryResponse is the order header plus its lines.
// LinesTotal is the sum of line totals and may differ from TotalAmount,
// which was fixed when the order was placed.
type GetOrderDetailsQueryResponse struct {
	ID          kernel.ID
	Username    string
	Status      order.Status
	TotalAmount decimal.Decimal
	OrderDate   time.Time
	Lines       []OrderLineResponse
	LinesTotal  decimal.Decimal
}

// OrderLineResponse is one line with the book's current title and author.
type OrderLineResponse struct {
	BookID    kernel.ID
	Title     string
	Author    string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
