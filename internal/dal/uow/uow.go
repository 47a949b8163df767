package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/imenurepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/cafe/internal/dal/postgres"
	menurepo "github.com/corray333/backend-labs/cafe/internal/dal/repositories/menu/postgres"
	orderrepo "github.com/corray333/backend-labs/cafe/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/corray333/backend-labs/cafe/internal/dal/repositories/outbox/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork hands out repositories bound either to the pool or,
// after Begin, to a single transaction.
type UnitOfWork struct {
	pool       *pgxpool.Pool
	tx         pgx.Tx
	menuRepo   imenurepo.IMenuRepository
	orderRepo  iorderrepo.IOrderRepository
	outboxRepo ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work whose repositories run on the pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.GenericConn) {
	u.menuRepo = menurepo.NewPostgresMenuRepository(conn)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.outboxRepo = outboxrepo.NewOutboxRepository(conn)
}

func (u *UnitOfWork) MenuRepository() imenurepo.IMenuRepository {
	return u.menuRepo
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// Begin starts a transaction and rebinds the repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback releases the transaction. It is safe to call after Commit,
// so callers defer it right after Begin.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}

	return err
}
