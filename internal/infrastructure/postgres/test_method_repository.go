package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var _ repository.TestMethodRepository = (*TestMethodRepo)(nil)

// TestMethodRepo catálogo de pruebas sobre PostgreSQL. price es NUMERIC (pgx-shopspring-decimal).
type TestMethodRepo struct {
	q Querier
}

func NewTestMethodRepository(q Querier) *TestMethodRepo {
	return &TestMethodRepo{q: q}
}

const testMethodColumns = `id, code, name, description, category, specimen_type, turnaround_days, price, is_active, created_at, updated_at`

func scanTestMethod(row pgx.Row) (*entity.TestMethod, error) {
	var m entity.TestMethod
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.Description, &m.Category, &m.SpecimenType, &m.TurnaroundDays,
		&m.Price, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TestMethodRepo) Create(ctx context.Context, m *entity.TestMethod) error {
	query := `
		INSERT INTO test_methods (` + testMethodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Code, m.Name, m.Description, m.Category, m.SpecimenType, m.TurnaroundDays, m.Price, m.IsActive,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("insert test method", err)
	}
	return nil
}

func (r *TestMethodRepo) GetByID(ctx context.Context, id string) (*entity.TestMethod, error) {
	return r.getOne(ctx, `SELECT `+testMethodColumns+` FROM test_methods WHERE id = $1`, id)
}

func (r *TestMethodRepo) GetByCode(ctx context.Context, code string) (*entity.TestMethod, error) {
	return r.getOne(ctx, `SELECT `+testMethodColumns+` FROM test_methods WHERE code = $1`, code)
}

func (r *TestMethodRepo) getOne(ctx context.Context, query, arg string) (*entity.TestMethod, error) {
	m, err := scanTestMethod(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get test method: %w", err)
	}
	return m, nil
}

func (r *TestMethodRepo) Update(ctx context.Context, m *entity.TestMethod) error {
	query := `
		UPDATE test_methods SET code = $2, name = $3, description = $4, category = $5, specimen_type = $6,
			turnaround_days = $7, price = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Code, m.Name, m.Description, m.Category, m.SpecimenType, m.TurnaroundDays, m.Price, m.IsActive, m.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update test method", err)
	}
	return expectOne(tag)
}

// Upsert por código. Conserva id, category y created_at de la fila existente.
func (r *TestMethodRepo) Upsert(ctx context.Context, m *entity.TestMethod) error {
	query := `
		INSERT INTO test_methods (` + testMethodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name, description = EXCLUDED.description, specimen_type = EXCLUDED.specimen_type,
			turnaround_days = EXCLUDED.turnaround_days, price = EXCLUDED.price, is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.Code, m.Name, m.Description, m.Category, m.SpecimenType, m.TurnaroundDays, m.Price, m.IsActive,
		m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return mapWriteErr("upsert test method", err)
	}
	return nil
}

// List filtros: q (código/nombre/categoría), activas.
func (r *TestMethodRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.TestMethod, int, error) {
	var w where
	w.search(f.Query, "code", "name", "category")
	if f.ActiveOnly {
		w.raw("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM test_methods`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapReadErr("count test methods", err)
	}
	limit, args := w.page(f)
	rows, err := r.q.Query(ctx, `SELECT `+testMethodColumns+` FROM test_methods`+w.String()+` ORDER BY code`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list test methods: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.TestMethod, 0)
	for rows.Next() {
		m, err := scanTestMethod(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan test method: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func (r *TestMethodRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM test_methods WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete test method", err)
	}
	return expectOne(tag)
}
