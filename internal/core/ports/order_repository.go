// Package ports defines the contracts between the order-management core and its
// infrastructure: repositories, the unit of work and the event publisher.
package ports

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All methods run inside the transaction of the unit of work that created the repository.
type OrderRepository interface {
	// Add persists a new order together with its lines.
	Add(ctx context.Context, aggregate *order.Order, lines []order.Line) error

	// Get retrieves an order by id.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	// Concurrent transitions of the same order serialize here.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetLineQuantities returns the order's quantities summed per book,
	// sorted by ascending book id. An order without lines yields an empty result.
	GetLineQuantities(ctx context.Context, id kernel.ID) (order.Quantities, error)

	// SetStatus persists a new status for an existing order.
	SetStatus(ctx context.Context, id kernel.ID, status order.Status) error
}
