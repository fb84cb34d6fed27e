package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador atómico por clave sobre la tabla sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el valor en una sola sentencia; la fila queda bloqueada hasta el fin de la tx.
func (r *SequenceRepo) Next(ctx context.Context, key string) (int64, error) {
	query := `
		INSERT INTO sequences (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = sequences.value + 1
		RETURNING value`
	var n int64
	if err := r.q.QueryRow(ctx, query, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", key, err)
	}
	return n, nil
}
