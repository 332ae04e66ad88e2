package queries

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the order list with its item counts.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for the order list.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns orders sorted by order date then id, both descending.
// ItemCount is the number of lines, not the number of copies.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := statusFilter(query.Status())
	sql := `
		SELECT
			o.id,
			COALESCE(u.username, ''),
			(SELECT COUNT(*) FROM order_details od WHERE od.order_id = o.id) AS item_count,
			o.total_amount,
			o.status,
			o.order_date
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		` + where + `
		ORDER BY o.order_date DESC, o.id DESC
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id          int64
			username    string
			itemCount   int
			totalAmount decimal.Decimal
			status      string
			orderDate   time.Time
		)
		if err = rows.Scan(&id, &username, &itemCount, &totalAmount, &status, &orderDate); err != nil {
			return nil, err
		}

		orders = append(orders, ListOrdersQueryResponse{
			ID:          kernel.ID(id),
			Username:    username,
			ItemCount:   itemCount,
			TotalAmount: totalAmount,
			Status:      order.ParseStatus(status),
			OrderDate:   orderDate,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func statusFilter(status *order.Status) (string, []any) {
	if status == nil {
		return "", nil
	}
	if *status == order.Pending {
		return "WHERE o.status NOT IN (?, ?)", []any{order.Completed.String(), order.Cancelled.String()}
	}
	return "WHERE o.status = ?", []any{status.String()}
}
