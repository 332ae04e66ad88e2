package services

import (
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"
)

// StockAdjustment is a signed change to one book's stock.
// Negative deltas debit, positive deltas credit.
type StockAdjustment struct {
	BookID kernel.ID
	Delta  int
}

// StockPlanner is a domain service that turns an order transition into stock adjustments.
//
// Business rules:
//   - Completing debits every aggregated line quantity
//   - A completion is all-or-nothing: every book is checked before any debit is planned
//   - Cancelling credits stock back only when the order was completed
//   - Credits have no ceiling
//
// Example usage:
//
//	planner := services.NewStockPlanner()
//	adjustments, err := planner.PlanCompletion(quantities, lockedStock)
//	if errors.Is(err, errs.ErrInsufficientStock) {
//	    // nothing was debited
//	    return err
//	}
//	for _, a := range adjustments {
//	    _ = books.AdjustStock(ctx, a.BookID, a.Delta)
//	}
type StockPlanner struct{}

func NewStockPlanner() StockPlanner {
	return StockPlanner{}
}

// PlanCompletion checks stock for every line and returns the debits.
//
// stock holds the current count per book, read under lock by the caller.
// Books are checked in ascending id order; the first book that falls short
// is reported as an InsufficientStockError. A book missing from stock yields
// an ObjectNotFoundError.
func (StockPlanner) PlanCompletion(quantities order.Quantities, stock map[kernel.ID]int) ([]StockAdjustment, error) {
	for _, q := range quantities {
		available, ok := stock[q.BookID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("book", q.BookID)
		}
		if available < q.Quantity {
			return nil, errs.NewInsufficientStockError(q.BookID, q.Quantity, available)
		}
	}

	adjustments := make([]StockAdjustment, 0, len(quantities))
	for _, q := range quantities {
		adjustments = append(adjustments, StockAdjustment{BookID: q.BookID, Delta: -q.Quantity})
	}
	return adjustments, nil
}

// PlanCancellation returns the credits owed when an order leaves the given status.
// Only a completed order has debited stock, so every other status yields none.
func (StockPlanner) PlanCancellation(previous order.Status, quantities order.Quantities) []StockAdjustment {
	if !previous.IsDebited() {
		return nil
	}

	adjustments := make([]StockAdjustment, 0, len(quantities))
	for _, q := range quantities {
		adjustments = append(adjustments, StockAdjustment{BookID: q.BookID, Delta: q.Quantity})
	}
	return adjustments
}

// Apply returns stock after the adjustments. The input map is not modified.
func Apply(stock map[kernel.ID]int, adjustments []StockAdjustment) map[kernel.ID]int {
	result := make(map[kernel.ID]int, len(stock))
	for id, s := range stock {
		result[id] = s
	}
	for _, a := range adjustments {
		result[a.BookID] += a.Delta
	}
	return result
}
