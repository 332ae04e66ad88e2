package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/book"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order, lines []order.Line) error {
	args := m.Called(ctx, o, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetLineQuantities(ctx context.Context, id kernel.ID) (order.Quantities, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(order.Quantities)
	return q, args.Error(1)
}

func (m *MockOrderRepository) SetStatus(ctx context.Context, id kernel.ID, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockBookRepository struct{ mock.Mock }

func (m *MockBookRepository) GetStock(ctx context.Context, id kernel.ID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockBookRepository) LockStock(ctx context.Context, ids []kernel.ID) (map[kernel.ID]int, error) {
	args := m.Called(ctx, ids)
	stock, _ := args.Get(0).(map[kernel.ID]int)
	return stock, args.Error(1)
}

func (m *MockBookRepository) AdjustStock(ctx context.Context, id kernel.ID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockBookRepository) Upsert(ctx context.Context, books []*book.Book) error {
	args := m.Called(ctx, books)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) BookRepository() ports.BookRepository {
	args := m.Called()
	return args.Get(0).(ports.BookRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockBookUoWFactory struct{ mock.Mock }

func (m *MockBookUoWFactory) Create() commands.BookUoW {
	args := m.Called()
	return args.Get(0).(commands.BookUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishTransitioned(ctx context.Context, event order.Transitioned) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func restoreOrder(t *testing.T, id kernel.ID, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, 1, status, decimal.RequireFromString("120000"), time.Now())
	require.NoError(t, err)
	return o
}

func quantities(t *testing.T, byBook map[kernel.ID]int) order.Quantities {
	t.Helper()
	q, err := order.NewQuantities(byBook)
	require.NoError(t, err)
	return q
}
