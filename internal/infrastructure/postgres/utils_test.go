package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w where
	w.add("category_id = " + w.arg("c1"))
	w.search("50%_off", "name", "sku")
	page := w.page(20, 40)

	assert.Equal(t, ` WHERE category_id = $1 AND (name ILIKE $2 OR sku ILIKE $2)`, w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", page)
	assert.Equal(t, []any{"c1", `%50\%\_off%`, 20, 40}, w.args)
}

func TestWhereBuilder_Empty(t *testing.T) {
	var w where
	w.search("   ", "name")
	assert.Empty(t, w.sql())
	assert.Empty(t, w.page(0, 0))
	assert.Empty(t, w.args)
}

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isCheckViolation(unique))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}
