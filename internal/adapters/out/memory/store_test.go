package memory_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"bookstore/internal/adapters/out/memory"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/book"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFactory struct{ store *memory.Store }

func (f uowFactory) Create() commands.UoW { return f.store.Create() }

func seed(t *testing.T, store *memory.Store, stock map[kernel.ID]int) {
	t.Helper()
	books := make([]*book.Book, 0, len(stock))
	for id, s := range stock {
		b, err := book.NewBook(id, nil, "Book "+id.String(), "", decimal.NewFromInt(100), s, "")
		require.NoError(t, err)
		books = append(books, b)
	}
	require.NoError(t, store.Create().BookRepository().Upsert(t.Context(), books))
}

func seedOrder(t *testing.T, store *memory.Store, id kernel.ID, quantities map[kernel.ID]int) {
	t.Helper()
	o, err := order.NewOrder(id, 1, decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)
	lines := make([]order.Line, 0, len(quantities))
	for bookID, qty := range quantities {
		l, lineErr := order.NewLine(bookID, qty, decimal.NewFromInt(100))
		require.NoError(t, lineErr)
		lines = append(lines, l)
	}
	require.NoError(t, store.Create().OrderRepository().Add(t.Context(), o, lines))
}

func stockOf(t *testing.T, store *memory.Store, id kernel.ID) int {
	t.Helper()
	s, err := store.Create().BookRepository().GetStock(t.Context(), id)
	require.NoError(t, err)
	return s
}

func TestUnitOfWork_RollbackRestoresSnapshot(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	seed(t, store, map[kernel.ID]int{1: 5})
	seedOrder(t, store, 3, map[kernel.ID]int{1: 1})

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.BookRepository().AdjustStock(ctx, 1, -4))
	require.NoError(t, uow.OrderRepository().SetStatus(ctx, 3, order.Completed))
	require.NoError(t, uow.Rollback(ctx))

	assert.Equal(t, 5, stockOf(t, store, 1))
	o, err := store.Create().OrderRepository().Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
}

func TestUnitOfWork_CommitKeepsChanges(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	seed(t, store, map[kernel.ID]int{1: 5})

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.BookRepository().AdjustStock(ctx, 1, -2))
	require.NoError(t, uow.Commit(ctx))

	assert.Equal(t, 3, stockOf(t, store, 1))
	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)
}

func TestUnitOfWork_CommitWithCancelledContextRollsBack(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, map[kernel.ID]int{1: 5})

	ctx, cancel := context.WithCancel(t.Context())
	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.BookRepository().AdjustStock(ctx, 1, -2))
	cancel()

	require.ErrorIs(t, uow.Commit(ctx), context.Canceled)
	assert.Equal(t, 5, stockOf(t, store, 1))
}

func TestUnitOfWork_BeginWaitsForSlot(t *testing.T) {
	store := memory.NewStore()
	holder := store.Create()
	require.NoError(t, holder.Begin(t.Context()))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	err := store.Create().Begin(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NoError(t, holder.Rollback(t.Context()))
}

func TestBookRepository_AdjustStock(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	seed(t, store, map[kernel.ID]int{1: 2})
	repo := store.Create().BookRepository()

	require.ErrorIs(t, repo.AdjustStock(ctx, 1, -3), errs.ErrStockConflict)
	require.ErrorIs(t, repo.AdjustStock(ctx, 9, 1), errs.ErrObjectNotFound)
	require.NoError(t, repo.AdjustStock(ctx, 1, 10))
	assert.Equal(t, 12, stockOf(t, store, 1))
}

func TestBookRepository_LockStock(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, map[kernel.ID]int{1: 2, 2: 0})
	repo := store.Create().BookRepository()

	stock, err := repo.LockStock(t.Context(), []kernel.ID{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[kernel.ID]int{1: 2, 2: 0}, stock)

	_, err = repo.LockStock(t.Context(), []kernel.ID{1, 3})
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrderRepository_AddDuplicate(t *testing.T) {
	store := memory.NewStore()
	seedOrder(t, store, 1, nil)

	o, _ := order.NewOrder(1, 1, decimal.Zero, time.Now())
	err := store.Create().OrderRepository().Add(t.Context(), o, nil)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTransitionHandler_ConcurrentCompletionsNeverOversell(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, map[kernel.ID]int{1: 4})
	for i := 1; i <= 9; i++ {
		seedOrder(t, store, kernel.ID(i), map[kernel.ID]int{1: 1})
	}
	handler := commands.NewTransitionOrderCommandHandler(
		uowFactory{store: store}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 1; i <= 9; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			cmd, _ := commands.NewTransitionOrderCommand(id, "complete")
			_, err := handler.Handle(t.Context(), cmd)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.Equal(t, commands.KindInsufficientStock, commands.Classify(err))
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 4, succeeded)
	assert.Equal(t, 0, stockOf(t, store, 1))
}
