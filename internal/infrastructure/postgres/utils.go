package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// isForeignKeyViolation 23503: fila referenciada por otra tabla (o referencia inexistente).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// isNoRows trata como ausente tanto la fila inexistente como un ID que no es UUID válido (22P02).
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgCode(err) == pgInvalidText
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteErr traduce los códigos de PostgreSQL a errores de dominio; el resto se envuelve con op.
func mapWriteErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, constraintOf(err))
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrConflict, constraintOf(err))
	case pgCode(err) == pgInvalidText:
		return domain.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// mapReadErr un filtro de listado que no es UUID válido es entrada inválida, no un fallo interno.
func mapReadErr(op string, err error) error {
	if pgCode(err) == pgInvalidText {
		return fmt.Errorf("%w: filtro con identificador mal formado", domain.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func constraintOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "restricción"
}

// expectOne ErrNotFound cuando un UPDATE/DELETE por ID no tocó filas.
func expectOne(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// where acumula condiciones con placeholders numerados para los listados.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) search(q string, cols ...string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}
	w.args = append(w.args, "%"+escapeLike(q)+"%")
	ph := fmt.Sprintf("$%d", len(w.args))
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " ILIKE " + ph
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page añade LIMIT/OFFSET como últimos placeholders.
func (w *where) page(f repository.ListFilter) (string, []any) {
	args := append(append([]any{}, w.args...), f.Limit, f.Offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// nullable "" -> NULL para columnas UUID opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func errNotFound(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
}
