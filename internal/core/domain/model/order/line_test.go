package order_test

import (
	"testing"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("should compute line total", func(t *testing.T) {
		l, err := order.NewLine(2, 3, decimal.RequireFromString("12.50"))

		require.NoError(t, err)
		assert.Equal(t, "37.5", l.Total().String())
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := order.NewLine(2, 0, decimal.NewFromInt(1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "quantity is invalid")
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewLine(2, 1, decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unit price is invalid")
	})
}

func TestAggregateLines(t *testing.T) {
	mustLine := func(bookID kernel.ID, qty int) order.Line {
		l, err := order.NewLine(bookID, qty, decimal.NewFromInt(10))
		require.NoError(t, err)
		return l
	}

	q := order.AggregateLines([]order.Line{
		mustLine(5, 1),
		mustLine(2, 2),
		mustLine(5, 3),
	})

	assert.Equal(t, order.Quantities{
		{BookID: 2, Quantity: 2},
		{BookID: 5, Quantity: 4},
	}, q)
	assert.Equal(t, []kernel.ID{2, 5}, q.BookIDs())
	assert.Equal(t, 4, q.Of(5))
	assert.Equal(t, 0, q.Of(9))
}

func TestNewQuantities(t *testing.T) {
	t.Run("should sort by book id", func(t *testing.T) {
		q, err := order.NewQuantities(map[kernel.ID]int{9: 1, 1: 2, 4: 3})

		require.NoError(t, err)
		assert.Equal(t, []kernel.ID{1, 4, 9}, q.BookIDs())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewQuantities(map[kernel.ID]int{1: 0})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("empty input yields empty quantities", func(t *testing.T) {
		q, err := order.NewQuantities(nil)

		require.NoError(t, err)
		assert.Empty(t, q)
	})
}
