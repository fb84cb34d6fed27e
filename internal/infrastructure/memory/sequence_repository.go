package memory

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// SequenceRepo contador por clave; la atomicidad la da el mutex del Store.
type SequenceRepo struct{ a access }

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

func (r *SequenceRepo) Next(ctx context.Context, key string) (int64, error) {
	var n int64
	err := r.a.write(func(st *state) error {
		st.counters[key]++
		n = st.counters[key]
		return nil
	})
	return n, err
}
