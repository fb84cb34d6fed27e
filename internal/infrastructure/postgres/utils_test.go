package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión cerrada")))
}

func TestWhereBuilder_PlaceholdersYPaginacion(t *testing.T) {
	w := &whereBuilder{}
	assert.Equal(t, "", w.sql())

	w.add(`name ILIKE $%d`, "%latte%")
	w.add(`active = $%d`, true)
	assert.Equal(t, " WHERE name ILIKE $1 AND active = $2", w.sql())

	page, args := w.limitOffset(20, 40)
	assert.Equal(t, " LIMIT $3 OFFSET $4", page)
	assert.Equal(t, []any{"%latte%", true, 20, 40}, args)
	assert.Len(t, w.args, 2, "limitOffset no modifica los args del filtro")

	page, args = (&whereBuilder{}).limitOffset(0, 0)
	assert.Empty(t, page)
	assert.Empty(t, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `%50\% off%`, escapeLike("50% off"))
	assert.Equal(t, `%a\_b%`, escapeLike("a_b"))
}

func TestMigrateURL(t *testing.T) {
	got, err := migrateURL("postgres://pos:secret@db:5432/cafe?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://pos:secret@db:5432/cafe?sslmode=disable", got)

	_, err = migrateURL("mysql://x@y/z")
	assert.Error(t, err)
}

func TestMigrationsEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/000001_init.up.sql")
	assert.Contains(t, files, "migrations/000001_init.down.sql")
}
