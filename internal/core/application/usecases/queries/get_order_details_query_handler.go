package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
// Lines whose book was removed from the catalog are still listed, with empty title and author.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.header(db, query.OrderID())
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT
			od.book_id,
			COALESCE(b.title, ''),
			COALESCE(b.author, ''),
			od.quantity,
			od.price
		FROM order_details od
		LEFT JOIN books b ON b.id = od.book_id
		WHERE od.order_id = ?
		ORDER BY od.id
	`, query.OrderID().Int64()).Rows()
	if err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}
	defer rows.Close()

	resp.Lines = make([]OrderLineResponse, 0)
	resp.LinesTotal = decimal.Zero
	for rows.Next() {
		var (
			bookID    int64
			line      OrderLineResponse
			unitPrice decimal.Decimal
		)
		if err = rows.Scan(&bookID, &line.Title, &line.Author, &line.Quantity, &unitPrice); err != nil {
			return GetOrderDetailsQueryResponse{}, err
		}

		line.BookID = kernel.ID(bookID)
		line.UnitPrice = unitPrice
		line.LineTotal = unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		resp.LinesTotal = resp.LinesTotal.Add(line.LineTotal)
		resp.Lines = append(resp.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return GetOrderDetailsQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderDetailsQueryHandler) header(db *gorm.DB, id kernel.ID) (GetOrderDetailsQueryResponse, error) {
	row := db.Raw(`
		SELECT
			o.id,
			COALESCE(u.username, ''),
			o.status,
			o.total_amount,
			o.order_date
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = ?
	`, id.Int64()).Row()
	if row.Err() != nil {
		return GetOrderDetailsQueryResponse{}, row.Err()
	}

	var (
		orderID   int64
		username  string
		status    string
		total     decimal.Decimal
		orderDate time.Time
	)
	if err := row.Scan(&orderID, &username, &status, &total, &orderDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderDetailsQueryResponse{}, errs.NewObjectNotFoundError("order", id)
		}
		return GetOrderDetailsQueryResponse{}, err
	}

	return GetOrderDetailsQueryResponse{
		ID:          kernel.ID(orderID),
		Username:    username,
		Status:      order.ParseStatus(status),
		TotalAmount: total,
		OrderDate:   orderDate,
	}, nil
}
