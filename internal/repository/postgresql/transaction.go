package postgresql

import (
	"context"
	"fmt"

	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// TxManager runs a function inside a single database transaction. Services
// depend on this interface so tests can swap in a pass-through fake.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txManagerImpl struct {
	db *database.DB
}

func NewTxManager(db *database.DB) TxManager {
	return &txManagerImpl{db: db}
}

// WithinTransaction begins a transaction, stashes it in the context so
// GetQuerier picks it up, and commits only when fn returns nil.
func (m *txManagerImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				fmt.Printf("rollback error during panic recovery: %v\n", rbErr)
			}
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, "tx", tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value("tx").(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}
