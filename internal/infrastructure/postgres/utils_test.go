package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFilter_WhereYParametros(t *testing.T) {
	var f filter
	assert.Equal(t, "", f.where())

	f.eq("store", "BOBA")
	f.search("  ", "name")
	f.search("50%_off", "name", "brand")

	assert.Equal(t, " WHERE store = $1 AND (name ILIKE $2 OR brand ILIKE $2)", f.where())
	assert.Equal(t, []any{"BOBA", `%50\%\_off%`}, f.args)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestMigrationsEmbebidas(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_init.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS movements")
	assert.Contains(t, string(script), "items_stock_invariant")
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("x")
	if assert.NotNil(t, v) {
		assert.Equal(t, "x", stringOrEmpty(v))
	}
	assert.Equal(t, "", stringOrEmpty(nil))
}
