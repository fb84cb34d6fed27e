package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool      *pgxpool.Pool
	sequences repository.SequenceRepository // nil = tabla sequences dentro de la tx
}

// TxOption personaliza el runner.
type TxOption func(*TxRunner)

// WithSequences usa un contador externo (p. ej. Redis) en lugar de la tabla sequences.
func WithSequences(seq repository.SequenceRepository) TxOption {
	return func(r *TxRunner) { r.sequences = seq }
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, opts ...TxOption) *TxRunner {
	r := &TxRunner{pool: pool}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := NewRepos(tx)
	if r.sequences != nil {
		repos.Sequences = r.sequences
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repos devuelve los repositorios sobre el pool (fuera de transacción).
func (r *TxRunner) Repos() repository.Repos {
	repos := NewRepos(r.pool)
	if r.sequences != nil {
		repos.Sequences = r.sequences
	}
	return repos
}

// NewRepos construye todos los repositorios sobre q (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Products:  NewProductRepository(q),
		Orders:    NewOrderRepository(q),
		Movements: NewStockMovementRepository(q),
		Suppliers: NewSupplierRepository(q),
		Invoices:  NewPurchaseInvoiceRepository(q),
		Users:     NewUserRepository(q),
		Sequences: NewSequenceRepository(q),
	}
}
