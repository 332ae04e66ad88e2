package queries

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GetLowStockBooksQueryHandler struct {
	db *gorm.DB
}

func NewGetLowStockBooksQueryHandler(db *gorm.DB) GetLowStockBooksQueryHandler {
	return GetLowStockBooksQueryHandler{db: db}
}

// Handle returns low-stock books, emptiest first.
func (h GetLowStockBooksQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockBooksQuery,
) ([]GetLowStockBooksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, title, stock
		FROM books
		WHERE stock <= ?
		ORDER BY stock, id
	`, query.Threshold()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]GetLowStockBooksQueryResponse, 0)
	for rows.Next() {
		var (
			id   int64
			resp GetLowStockBooksQueryResponse
		)
		if err = rows.Scan(&id, &resp.Title, &resp.Stock); err != nil {
			return nil, err
		}
		resp.ID = kernel.ID(id)
		books = append(books, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}
