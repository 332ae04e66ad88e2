package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to complete or cancel an order.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(7, "complete")
//	if err != nil {
//	    return err // BadRequest, no transaction was opened
//	}
//	result, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	action  order.Action

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand validates the raw order id and action.
// The id must be positive and the action exactly "complete" or "cancel".
func NewTransitionOrderCommand(orderID int64, action string) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}

func (c *TransitionOrderCommand) setOrderID(orderID int64) error {
	id, err := kernel.NewID(orderID)
	if err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setAction(raw string) error {
	action, err := order.ParseAction(raw)
	if err != nil {
		return err
	}

	c.action = action
	return nil
}
