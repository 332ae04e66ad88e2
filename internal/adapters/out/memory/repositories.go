package memory

import (
	"context"

	"bookstore/internal/core/domain/model/book"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order, lines []order.Line) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		if _, exists := s.orders[aggregate.ID()]; exists {
			return errs.NewValueIsInvalidError("order #" + aggregate.ID().String() + " already exists")
		}
		s.orders[aggregate.ID()] = orderRecord{
			customerID:  aggregate.CustomerID(),
			status:      aggregate.Status(),
			totalAmount: aggregate.TotalAmount(),
			placedAt:    aggregate.PlacedAt(),
		}
		s.lines[aggregate.ID()] = append([]order.Line(nil), lines...)
		return nil
	})
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	var result *order.Order
	err := r.uow.run(ctx, func(s *state) error {
		rec, ok := s.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("order", id)
		}
		o, err := order.RestoreOrder(id, rec.customerID, rec.status, rec.totalAmount, rec.placedAt)
		if err != nil {
			return err
		}
		result = o
		return nil
	})
	return result, err
}

// GetForUpdate is Get; the transaction already holds the whole store.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *OrderRepository) GetLineQuantities(ctx context.Context, id kernel.ID) (order.Quantities, error) {
	var result order.Quantities
	err := r.uow.run(ctx, func(s *state) error {
		result = order.AggregateLines(s.lines[id])
		return nil
	})
	return result, err
}

func (r *OrderRepository) SetStatus(ctx context.Context, id kernel.ID, status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	return r.uow.run(ctx, func(s *state) error {
		rec, ok := s.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("order", id)
		}
		rec.status = status
		s.orders[id] = rec
		return nil
	})
}

// BookRepository implements ports.BookRepository over a Store.
type BookRepository struct {
	uow *UnitOfWork
}

func (r *BookRepository) GetStock(ctx context.Context, id kernel.ID) (int, error) {
	var result int
	err := r.uow.run(ctx, func(s *state) error {
		stock, ok := s.stock[id]
		if !ok {
			return errs.NewObjectNotFoundError("book", id)
		}
		result = stock
		return nil
	})
	return result, err
}

func (r *BookRepository) LockStock(ctx context.Context, ids []kernel.ID) (map[kernel.ID]int, error) {
	result := make(map[kernel.ID]int, len(ids))
	err := r.uow.run(ctx, func(s *state) error {
		for _, id := range ids {
			stock, ok := s.stock[id]
			if !ok {
				return errs.NewObjectNotFoundError("book", id)
			}
			result[id] = stock
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BookRepository) AdjustStock(ctx context.Context, id kernel.ID, delta int) error {
	return r.uow.run(ctx, func(s *state) error {
		stock, ok := s.stock[id]
		if !ok {
			return errs.NewObjectNotFoundError("book", id)
		}
		if stock+delta < 0 {
			return errs.NewStockConflictError(id, delta)
		}
		s.stock[id] = stock + delta
		return nil
	})
}

func (r *BookRepository) Upsert(ctx context.Context, books []*book.Book) error {
	for _, b := range books {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return r.uow.run(ctx, func(s *state) error {
		for _, b := range books {
			s.books[b.ID()] = b
			s.stock[b.ID()] = b.Stock()
		}
		return nil
	})
}
