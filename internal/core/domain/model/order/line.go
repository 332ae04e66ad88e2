package order

import (
	"errors"
	"fmt"
	"slices"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one row of an order: a book, how many copies, and the unit price
// captured when the order was placed.
type Line struct {
	bookID    kernel.ID
	quantity  int
	unitPrice decimal.Decimal
}

func NewLine(bookID kernel.ID, quantity int, unitPrice decimal.Decimal) (Line, error) {
	var errList []error
	if err := bookID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("book id is invalid", err))
	}
	if quantity <= 0 {
		errList = append(errList,
			errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPrice.IsNegative() {
		errList = append(errList,
			errs.NewValueIsInvalidErrorWithCause("unit price is invalid", fmt.Errorf("%s is negative", unitPrice)))
	}
	if err := errors.Join(errList...); err != nil {
		return Line{}, err
	}

	return Line{bookID: bookID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (l Line) BookID() kernel.ID {
	return l.bookID
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// Total is unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Quantity is the number of copies of one book across all lines of an order.
type Quantity struct {
	BookID   kernel.ID
	Quantity int
}

// Quantities holds one entry per book, sorted by ascending book id.
// The order is stable so every pass over it visits books in the same sequence,
// which is also the order inventory rows are locked in.
type Quantities []Quantity

// AggregateLines sums quantities per book.
func AggregateLines(lines []Line) Quantities {
	byBook := make(map[kernel.ID]int, len(lines))
	for _, l := range lines {
		byBook[l.bookID] += l.quantity
	}
	q, _ := NewQuantities(byBook)
	return q
}

// NewQuantities builds the sorted aggregation from per-book sums.
// Every book id must be valid and every quantity positive.
func NewQuantities(byBook map[kernel.ID]int) (Quantities, error) {
	q := make(Quantities, 0, len(byBook))
	for bookID, quantity := range byBook {
		if err := bookID.Validate(); err != nil {
			return nil, err
		}
		if quantity <= 0 {
			return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
		}
		q = append(q, Quantity{BookID: bookID, Quantity: quantity})
	}

	slices.SortFunc(q, func(a, b Quantity) int {
		switch {
		case a.BookID < b.BookID:
			return -1
		case a.BookID > b.BookID:
			return 1
		default:
			return 0
		}
	})

	return q, nil
}

// BookIDs lists the books in ascending order.
func (q Quantities) BookIDs() []kernel.ID {
	ids := make([]kernel.ID, len(q))
	for i, item := range q {
		ids[i] = item.BookID
	}
	return ids
}

// Of returns the aggregated quantity for a book, or zero.
func (q Quantities) Of(bookID kernel.ID) int {
	for _, item := range q {
		if item.BookID == bookID {
			return item.Quantity
		}
	}
	return 0
}
