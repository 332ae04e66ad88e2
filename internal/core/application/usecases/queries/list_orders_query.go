// Package queries contains read-only operations of the order administration views.
// Handlers read straight from the database with raw SQL and return flat response structs.
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
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery retrieves every order, newest first.
// An optional status narrows the result; Pending matches every non-terminal stored value.
//
// Example:
//
//	query := NewListOrdersQuery(nil)
//	handler := NewListOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	for _, o := range orders {
//	    fmt.Printf("#%d %s %s\n", o.ID, o.Username, o.Status)
//	}
type ListOrdersQuery struct {
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates the query. status may be nil.
func NewListOrdersQuery(status *order.Status) (ListOrdersQuery, error) {
	q := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		s := *status
		q.status = &s
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// ListOrdersQueryResponse is one row of the order list.
// Username is empty when the customer account no longer exists.
type ListOrdersQueryResponse struct {
	ID          kernel.ID
	Username    string
	ItemCount   int
	TotalAmount decimal.Decimal
	Status      order.Status
	OrderDate   time.Time
}
