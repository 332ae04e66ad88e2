package ports

import (
	"context"

	"bookstore/internal/core/domain/model/book"
	"bookstore/internal/core/domain/model/kernel"
)

// BookRepository is the inventory store. Stock changes are only visible to
// other transactions after the surrounding unit of work commits.
type BookRepository interface {
	// GetStock returns the current stock of a book without locking it.
	GetStock(ctx context.Context, id kernel.ID) (int, error)

	// LockStock reads the stock of the given books and locks their rows until the
	// transaction ends. Rows are locked in ascending id order. A missing book
	// fails the whole call with errs.ObjectNotFoundError.
	//
	// Example:
	//   stock, err := repo.LockStock(ctx, quantities.BookIDs())
	//   if err != nil {
	//       return err
	//   }
	//   available := stock[bookID]
	LockStock(ctx context.Context, ids []kernel.ID) (map[kernel.ID]int, error)

	// AdjustStock adds delta to the stock of a book. A result below zero is
	// refused with errs.StockConflictError and nothing changes.
	AdjustStock(ctx context.Context, id kernel.ID, delta int) error

	// Upsert inserts books or overwrites the catalog fields of existing ones.
	Upsert(ctx context.Context, books []*book.Book) error
}
