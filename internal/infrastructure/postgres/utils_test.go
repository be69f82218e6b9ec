package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

func TestWhere_Placeholders(t *testing.T) {
	var w where
	w.search("ab_c", "code", "name")
	w.add("organization_id = ?", "org-1")
	w.raw("is_active")
	w.add("status = ?", "Received")

	assert.Equal(t, " WHERE (code ILIKE $1 OR name ILIKE $1) AND organization_id = $2 AND is_active AND status = $3", w.String())
	assert.Equal(t, []any{`%ab\_c%`, "org-1", "Received"}, w.args)

	limit, args := w.page(repository.ListFilter{Limit: 20, Offset: 40})
	assert.Equal(t, " LIMIT $4 OFFSET $5", limit)
	assert.Len(t, args, 5)
	assert.Len(t, w.args, 3, "page no altera los args del conteo")
}

func TestWhere_Vacio(t *testing.T) {
	var w where
	w.search("   ", "name")
	assert.Equal(t, "", w.String())
	limit, args := w.page(repository.ListFilter{Limit: 10})
	assert.Equal(t, " LIMIT $1 OFFSET $2", limit)
	assert.Equal(t, []any{10, 0}, args)
}

func TestMapWriteErr(t *testing.T) {
	dup := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: "organizations_code_key"})
	err := mapWriteErr("insert organization", dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "organizations_code_key")

	fk := &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, mapWriteErr("delete organization", fk), domain.ErrConflict)

	badID := fmt.Errorf("exec: %w", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})
	assert.ErrorIs(t, mapWriteErr("delete batch", badID), domain.ErrNotFound)

	other := errors.New("conexión cerrada")
	err = mapWriteErr("update order", other)
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "update order")
}

func TestExpectOne(t *testing.T) {
	assert.ErrorIs(t, expectOne(pgconn.NewCommandTag("DELETE 0")), domain.ErrNotFound)
	assert.NoError(t, expectOne(pgconn.NewCommandTag("UPDATE 1")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.True(t, isNoRows(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isNoRows(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNoRows(errors.New("conexión cerrada")))
}

func TestMapReadErr(t *testing.T) {
	err := mapReadErr("count batches", &pgconn.PgError{Code: "22P02"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	other := errors.New("timeout")
	err = mapReadErr("count batches", other)
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "count batches")
}
