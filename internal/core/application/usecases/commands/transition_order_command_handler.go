package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/domain/services"
	"bookstore/internal/core/ports"
)

// TransitionResult describes a committed transition.
type TransitionResult struct {
	OrderID        kernel.ID
	PreviousStatus order.Status
	NewStatus      order.Status
}

// TransitionOrderCommandHandler completes or cancels an order and keeps book stock
// consistent with the new status.
//
// Order row and the stock rows of its books are locked for the whole transaction,
// so concurrent transitions on the same order or on overlapping books serialize
// while disjoint ones run in parallel. Either the status and every stock change
// are committed together, or nothing is.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewTransitionOrderCommand(8, "complete")
//
//	result, err := handler.Handle(ctx, cmd)
//	switch Classify(err) {
//	case KindInsufficientStock:
//	    // nothing was debited, the order is still pending
//	}
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
	planner    services.StockPlanner
	logger     *slog.Logger
	now        func() time.Time
}

// NewTransitionOrderCommandHandler creates the handler. publisher may be nil,
// in which case no events are sent.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) *TransitionOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		planner:    services.NewStockPlanner(),
		logger:     logger.With("component", "transition_order_handler"),
		now:        time.Now,
	}
}

// Handle runs the transition in one unit of work.
//
// Failures and their effect:
//   - order missing: errs.ObjectNotFoundError, nothing changes
//   - order already in the target status: errs.InvalidTransitionError, nothing changes
//   - some book short on stock: errs.InsufficientStockError for the first such book
//     in ascending id order, nothing is debited
//   - any storage error or context cancellation: the transaction is rolled back
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (TransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionResult{}, fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	bookRepo := uow.BookRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return TransitionResult{}, err
	}

	quantities, err := orderRepo.GetLineQuantities(ctx, o.ID())
	if err != nil {
		return TransitionResult{}, err
	}

	previous := o.Status()
	if err = o.Apply(cmd.Action()); err != nil {
		return TransitionResult{}, err
	}

	adjustments, err := h.plan(ctx, bookRepo, cmd.Action(), previous, quantities)
	if err != nil {
		return TransitionResult{}, err
	}

	for _, a := range adjustments {
		if err = bookRepo.AdjustStock(ctx, a.BookID, a.Delta); err != nil {
			return TransitionResult{}, err
		}
	}

	if err = orderRepo.SetStatus(ctx, o.ID(), o.Status()); err != nil {
		return TransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionResult{}, fmt.Errorf("commit transaction: %w", err)
	}

	result := TransitionResult{
		OrderID:        o.ID(),
		PreviousStatus: previous,
		NewStatus:      o.Status(),
	}

	h.logger.InfoContext(ctx, "order transitioned",
		"order_id", result.OrderID.Int64(),
		"from", result.PreviousStatus.String(),
		"to", result.NewStatus.String(),
		"stock_adjustments", len(adjustments),
	)
	h.publish(ctx, result)

	return result, nil
}

func (h *TransitionOrderCommandHandler) plan(
	ctx context.Context,
	bookRepo ports.BookRepository,
	action order.Action,
	previous order.Status,
	quantities order.Quantities,
) ([]services.StockAdjustment, error) {
	if action == order.ActionCancel {
		return h.planner.PlanCancellation(previous, quantities), nil
	}

	if len(quantities) == 0 {
		return nil, nil
	}

	stock, err := bookRepo.LockStock(ctx, quantities.BookIDs())
	if err != nil {
		return nil, err
	}

	return h.planner.PlanCompletion(quantities, stock)
}

func (h *TransitionOrderCommandHandler) publish(ctx context.Context, result TransitionResult) {
	if h.publisher == nil {
		return
	}

	event := order.NewTransitioned(result.OrderID, result.PreviousStatus, result.NewStatus, h.now())
	if err := h.publisher.PublishTransitioned(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order event",
			"order_id", result.OrderID.Int64(),
			"event_id", event.EventID.String(),
			"error", err,
		)
	}
}
