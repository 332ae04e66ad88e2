package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db: db,
	}
}

// Add saves a new order and its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order, lines []order.Line) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, lines)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order with SELECT ... FOR UPDATE.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(_ context.Context, db *gorm.DB, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.Take(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

type lineQuantityRow struct {
	BookID   int64
	Quantity int
}

// GetLineQuantities sums line quantities per book.
func (r *GormOrderRepository) GetLineQuantities(ctx context.Context, id kernel.ID) (order.Quantities, error) {
	var rows []lineQuantityRow
	err := r.db.WithContext(ctx).
		Model(&OrderLineDTO{}).
		Select("book_id, SUM(quantity) AS quantity").
		Where("order_id = ?", id.Int64()).
		Group("book_id").
		Order("book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byBook := make(map[kernel.ID]int, len(rows))
	for _, row := range rows {
		byBook[kernel.ID(row.BookID)] = row.Quantity
	}

	q, err := order.NewQuantities(byBook)
	if err != nil {
		return nil, fmt.Errorf("order #%d has invalid stored lines: %v", id, err)
	}
	return q, nil
}

// SetStatus updates the status column of an order.
func (r *GormOrderRepository) SetStatus(ctx context.Context, id kernel.ID, status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Int64()).
		Update("status", status.String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}

	return nil
}
