package bookrepo

import (
	"context"
	"errors"

	"bookstore/internal/core/domain/model/book"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pqCheckViolation is the SQLSTATE of a failed CHECK constraint.
const pqCheckViolation = "23514"

// GormBookRepository implements BookRepository using GORM.
type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{
		db: db,
	}
}

// Get retrieves a book by ID.
func (r *GormBookRepository) Get(ctx context.Context, id kernel.ID) (*book.Book, error) {
	var dto BookDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("book", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStock returns the stock of a book without locking.
func (r *GormBookRepository) GetStock(ctx context.Context, id kernel.ID) (int, error) {
	var dto BookDTO
	err := r.db.WithContext(ctx).Select("id", "stock").Take(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("book", id)
		}
		return 0, err
	}

	return dto.Stock, nil
}

// LockStock runs SELECT id, stock ... ORDER BY id FOR UPDATE.
// Postgres locks the rows after sorting, so every caller acquires them in ascending id order.
func (r *GormBookRepository) LockStock(ctx context.Context, ids []kernel.ID) (map[kernel.ID]int, error) {
	stock := make(map[kernel.ID]int, len(ids))
	if len(ids) == 0 {
		return stock, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = id.Int64()
	}

	var dtos []BookDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "stock").
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		stock[kernel.ID(dto.ID)] = dto.Stock
	}

	for _, id := range ids {
		if _, ok := stock[id]; !ok {
			return nil, errs.NewObjectNotFoundError("book", id)
		}
	}

	return stock, nil
}

// AdjustStock applies UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0.
func (r *GormBookRepository) AdjustStock(ctx context.Context, id kernel.ID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&BookDTO{}).
		Where("id = ? AND stock + ? >= 0", id.Int64(), delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		if isCheckViolation(result.Error) {
			return errs.NewStockConflictErrorWithCause(id, delta, result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 1 {
		return nil
	}

	if _, err := r.GetStock(ctx, id); err != nil {
		return err
	}
	return errs.NewStockConflictError(id, delta)
}

// Upsert inserts books or overwrites catalog fields of existing ones by id.
func (r *GormBookRepository) Upsert(ctx context.Context, books []*book.Book) error {
	if len(books) == 0 {
		return nil
	}

	dtos := make([]BookDTO, 0, len(books))
	for _, b := range books {
		if err := b.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(b))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"category_id", "title", "author", "price", "stock", "image"}),
		}).
		Create(&dtos).Error
}

func isCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqCheckViolation
}
