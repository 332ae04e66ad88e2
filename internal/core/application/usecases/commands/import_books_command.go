package commands

import (
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/book"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrImportBooksCommandIsNotConstructed = errors.New(
	"ImportBooksCommand must be created via NewImportBooksCommand constructor",
)

// BookRecord is one raw catalog row to import.
type BookRecord struct {
	ID         int64
	CategoryID *int64
	Title      string
	Author     string
	Price      decimal.Decimal
	Stock      int
	Image      string
}

// ImportBooksCommand carries a validated batch of catalog rows.
// Existing books are overwritten by id, new ones are inserted.
type ImportBooksCommand struct { //nolint:recvcheck //using for validation
	books []*book.Book

	guard guard.ConstructorGuard
}

// NewImportBooksCommand validates every record. Errors name the offending row.
// Duplicate ids within one batch are rejected.
func NewImportBooksCommand(records []BookRecord) (ImportBooksCommand, error) {
	if len(records) == 0 {
		return ImportBooksCommand{}, errs.NewValueIsRequiredError("books")
	}

	cmd := ImportBooksCommand{
		books: make([]*book.Book, 0, len(records)),
		guard: guard.NewConstructorGuard(),
	}

	seen := make(map[int64]struct{}, len(records))
	var errList []error
	for i, r := range records {
		if _, dup := seen[r.ID]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("books[%d]", i), fmt.Errorf("duplicate id %d", r.ID)))
			continue
		}
		seen[r.ID] = struct{}{}

		b, err := newBookFromRecord(r)
		if err != nil {
			errList = append(errList, fmt.Errorf("books[%d]: %w", i, err))
			continue
		}
		cmd.books = append(cmd.books, b)
	}

	if err := errors.Join(errList...); err != nil {
		return ImportBooksCommand{}, err
	}

	return cmd, nil
}

func newBookFromRecord(r BookRecord) (*book.Book, error) {
	var categoryID *kernel.ID
	if r.CategoryID != nil {
		id := kernel.ID(*r.CategoryID)
		categoryID = &id
	}
	return book.NewBook(kernel.ID(r.ID), categoryID, r.Title, r.Author, r.Price, r.Stock, imagePath(r.Image))
}

const imageDir = "image/"

// imagePath stores bare file names under the shared image directory.
func imagePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, imageDir) {
		return raw
	}
	return imageDir + raw
}

func (c ImportBooksCommand) Validate() error {
	return c.guard.Validate(ErrImportBooksCommandIsNotConstructed)
}

// Books returns the validated books in input order.
func (c ImportBooksCommand) Books() []*book.Book {
	return c.books
}
