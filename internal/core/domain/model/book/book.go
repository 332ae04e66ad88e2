package book

import (
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrBookIsNotConstructed is returned when a Book instance was not created through NewBook.
	ErrBookIsNotConstructed = errors.New("Book must be created via NewBook constructor")
)

// Book is a catalog entry. Title and author are free text, price is the current list price.
type Book struct {
	id         kernel.ID
	categoryID *kernel.ID
	title      string
	author     string
	price      decimal.Decimal
	stock      int
	image      string

	isConstructed bool
}

// NewBook validates and creates a book. categoryID is optional.
func NewBook(
	id kernel.ID,
	categoryID *kernel.ID,
	title, author string,
	price decimal.Decimal,
	stock int,
	image string,
) (*Book, error) {
	b := &Book{
		author:        strings.TrimSpace(author),
		image:         strings.TrimSpace(image),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setCategoryID(categoryID),
		b.setTitle(title),
		b.setPrice(price),
		b.setStock(stock),
	); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Book) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookIsNotConstructed
	}
	return nil
}

func (b *Book) ID() kernel.ID {
	return b.id
}

func (b *Book) CategoryID() *kernel.ID {
	return b.categoryID
}

func (b *Book) Title() string {
	return b.title
}

func (b *Book) Author() string {
	return b.author
}

func (b *Book) Price() decimal.Decimal {
	return b.price
}

func (b *Book) Stock() int {
	return b.stock
}

func (b *Book) Image() string {
	return b.image
}

func (b *Book) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Book) setCategoryID(categoryID *kernel.ID) error {
	if categoryID == nil {
		return nil
	}
	if err := categoryID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("category id is invalid", err)
	}
	id := *categoryID
	b.categoryID = &id
	return nil
}

func (b *Book) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	b.title = title
	return nil
}

func (b *Book) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%s is negative", price))
	}
	b.price = price
	return nil
}

func (b *Book) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock is invalid", fmt.Errorf("%d is negative", stock))
	}
	b.stock = stock
	return nil
}
