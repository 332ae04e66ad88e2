// Package bookrepo persists books and their stock counts.
// Stock rows are the inventory store of the order transition engine.
package bookrepo

import (
	"bookstore/internal/core/domain/model/book"
	"bookstore/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// BookDTO represents a catalog row. The check constraint keeps stock non-negative
// even if a writer bypasses the conditional update.
type BookDTO struct {
	ID         int64           `gorm:"primaryKey"`
	CategoryID *int64          `gorm:"index"`
	Title      string          `gorm:"size:255;not null"`
	Author     string          `gorm:"size:255"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock      int             `gorm:"not null;check:chk_books_stock,stock >= 0"`
	Image      string          `gorm:"size:255"`
}

func (BookDTO) TableName() string {
	return "books"
}

func fromDomain(b *book.Book) BookDTO {
	var categoryID *int64
	if id := b.CategoryID(); id != nil {
		raw := id.Int64()
		categoryID = &raw
	}

	return BookDTO{
		ID:         b.ID().Int64(),
		CategoryID: categoryID,
		Title:      b.Title(),
		Author:     b.Author(),
		Price:      b.Price(),
		Stock:      b.Stock(),
		Image:      b.Image(),
	}
}

func toDomain(dto BookDTO) (*book.Book, error) {
	var categoryID *kernel.ID
	if dto.CategoryID != nil {
		id := kernel.ID(*dto.CategoryID)
		categoryID = &id
	}

	return book.NewBook(kernel.ID(dto.ID), categoryID, dto.Title, dto.Author, dto.Price, dto.Stock, dto.Image)
}
