package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcolmenar/colavirtual-api/internal/domain/repository"
	"github.com/jcolmenar/colavirtual-api/internal/infrastructure/tasks"
)

var _ tasks.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de cola atado a la tx y
// hace Commit o Rollback. Lo usa la purga para que el marcado de tombstones y
// el borrado físico sean atómicos.
func (r *TxRunner) Run(ctx context.Context, fn func(colaRepo repository.ColaRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	colaRepo := NewColaRepository(tx)

	if err := fn(colaRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
