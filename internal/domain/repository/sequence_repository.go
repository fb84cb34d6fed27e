package repository

import "context"

// SequenceRepository contador atómico por clave. Next incrementa y devuelve el nuevo valor
// en una sola operación; el primer valor de una clave nueva es 1.
type SequenceRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}
