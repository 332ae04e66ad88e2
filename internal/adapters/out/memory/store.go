// Package memory is an in-process implementation of the order and inventory stores.
//
// A unit of work holds the store's single writer slot from Begin until Commit or
// Rollback, so transactions are fully serialized. Rollback restores the snapshot
// taken at Begin. Repository calls outside a transaction take the slot for one
// operation only.
package memory

import (
	"context"
	"errors"
	"maps"
	"time"

	"bookstore/internal/core/domain/model/book"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"

	"github.com/shopspring/decimal"
)

// ErrNoTransaction is returned by Commit and Rollback without an active transaction.
var ErrNoTransaction = errors.New("no active transaction")

type orderRecord struct {
	customerID  kernel.ID
	status      order.Status
	totalAmount decimal.Decimal
	placedAt    time.Time
}

type state struct {
	books  map[kernel.ID]*book.Book
	stock  map[kernel.ID]int
	orders map[kernel.ID]orderRecord
	lines  map[kernel.ID][]order.Line
}

func newState() *state {
	return &state{
		books:  make(map[kernel.ID]*book.Book),
		stock:  make(map[kernel.ID]int),
		orders: make(map[kernel.ID]orderRecord),
		lines:  make(map[kernel.ID][]order.Line),
	}
}

// clone copies the maps. Books and lines are immutable and shared.
func (s *state) clone() *state {
	return &state{
		books:  maps.Clone(s.books),
		stock:  maps.Clone(s.stock),
		orders: maps.Clone(s.orders),
		lines:  maps.Clone(s.lines),
	}
}

// Store is the shared in-memory database.
type Store struct {
	slot  chan struct{}
	state *state
}

func NewStore() *Store {
	return &Store{
		slot:  make(chan struct{}, 1),
		state: newState(),
	}
}

// Create returns a new unit of work over the store.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.slot
}

// UnitOfWork is a serialized transaction over a Store.
type UnitOfWork struct {
	store    *Store
	snapshot *state
	active   bool
}

// Begin waits for the store's writer slot or for ctx to be done.
// Calling Begin twice keeps the current transaction.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return nil
	}
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	u.snapshot = u.store.state.clone()
	u.active = true
	return nil
}

// Commit keeps the changes. A cancelled ctx rolls back instead.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	if err := ctx.Err(); err != nil {
		u.restore()
		return err
	}
	u.finish()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.restore()
	return nil
}

func (u *UnitOfWork) restore() {
	u.store.state = u.snapshot
	u.finish()
}

func (u *UnitOfWork) finish() {
	u.snapshot = nil
	u.active = false
	u.store.release()
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) BookRepository() ports.BookRepository {
	return &BookRepository{uow: u}
}

// run executes fn against the store state, inside the active transaction or
// as a single autocommitted operation.
func (u *UnitOfWork) run(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.active {
		return fn(u.store.state)
	}

	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	defer u.store.release()

	snapshot := u.store.state.clone()
	if err := fn(u.store.state); err != nil {
		u.store.state = snapshot
		return err
	}
	return nil
}
