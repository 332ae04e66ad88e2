package order

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a customer's purchase of one or more books.
//
// Order follows these invariants:
//   - id and customer id are positive
//   - total amount is set at placement and never negative
//   - status changes only through Complete, Cancel or Apply
type Order struct {
	id          kernel.ID
	customerID  kernel.ID
	status      Status
	totalAmount decimal.Decimal
	placedAt    time.Time

	isConstructed bool
}

// NewOrder creates a pending order.
//
// Example:
//
//	o, err := order.NewOrder(7, 3, decimal.RequireFromString("120000"), time.Now())
//	if err != nil {
//	    return err
//	}
func NewOrder(id, customerID kernel.ID, totalAmount decimal.Decimal, placedAt time.Time) (*Order, error) {
	return RestoreOrder(id, customerID, Pending, totalAmount, placedAt)
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(
	id, customerID kernel.ID,
	status Status,
	totalAmount decimal.Decimal,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		placedAt:      placedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStatus(status),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) CustomerID() kernel.ID {
	return o.customerID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// Complete marks the order completed. It fails with an InvalidTransitionError
// when the order is already completed; the status is left unchanged.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel marks the order cancelled. It fails with an InvalidTransitionError
// when the order is already cancelled.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Apply performs the given action.
func (o *Order) Apply(action Action) error {
	switch action {
	case ActionComplete:
		return o.Complete()
	case ActionCancel:
		return o.Cancel()
	default:
		return action.Validate()
	}
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer id is invalid", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTotalAmount(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total amount is invalid", fmt.Errorf("%s is negative", total))
	}
	o.totalAmount = total
	return nil
}
