package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var _ repository.TestPanelRepository = (*TestPanelRepo)(nil)

// TestPanelRepo paneles y su tabla de miembros test_panel_methods.
type TestPanelRepo struct {
	q Querier
}

func NewTestPanelRepository(q Querier) *TestPanelRepo {
	return &TestPanelRepo{q: q}
}

const testPanelColumns = `id, code, name, description, is_active, created_at, updated_at`

func scanTestPanel(row pgx.Row) (*entity.TestPanel, error) {
	var p entity.TestPanel
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta el panel y sus miembros en una transacción.
func (r *TestPanelRepo) Create(ctx context.Context, p *entity.TestPanel) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		query := `INSERT INTO test_panels (` + testPanelColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := tx.Exec(ctx, query, p.ID, p.Code, p.Name, p.Description, p.IsActive, p.CreatedAt, p.UpdatedAt); err != nil {
			return mapWriteErr("insert test panel", err)
		}
		return replaceMembers(ctx, tx, p.ID, p.TestMethodIDs)
	})
}

func (r *TestPanelRepo) GetByID(ctx context.Context, id string) (*entity.TestPanel, error) {
	return r.getOne(ctx, `SELECT `+testPanelColumns+` FROM test_panels WHERE id = $1`, id)
}

func (r *TestPanelRepo) GetByCode(ctx context.Context, code string) (*entity.TestPanel, error) {
	return r.getOne(ctx, `SELECT `+testPanelColumns+` FROM test_panels WHERE code = $1`, code)
}

func (r *TestPanelRepo) getOne(ctx context.Context, query, arg string) (*entity.TestPanel, error) {
	p, err := scanTestPanel(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get test panel: %w", err)
	}
	if p.TestMethodIDs, err = r.members(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *TestPanelRepo) members(ctx context.Context, panelID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT test_method_id FROM test_panel_methods WHERE panel_id = $1 ORDER BY position`, panelID)
	if err != nil {
		return nil, fmt.Errorf("list panel members: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan panel members: %w", err)
	}
	return ids, nil
}

// Update no toca los miembros (SetMembers).
func (r *TestPanelRepo) Update(ctx context.Context, p *entity.TestPanel) error {
	query := `
		UPDATE test_panels SET code = $2, name = $3, description = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Code, p.Name, p.Description, p.IsActive, p.UpdatedAt)
	if err != nil {
		return mapWriteErr("update test panel", err)
	}
	return expectOne(tag)
}

// Upsert por código e inserta/reemplaza los miembros.
func (r *TestPanelRepo) Upsert(ctx context.Context, p *entity.TestPanel) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		query := `
			INSERT INTO test_panels (` + testPanelColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name, description = EXCLUDED.description, is_active = EXCLUDED.is_active,
				updated_at = EXCLUDED.updated_at
			RETURNING id`
		err := tx.QueryRow(ctx, query, p.ID, p.Code, p.Name, p.Description, p.IsActive, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
		if err != nil {
			return mapWriteErr("upsert test panel", err)
		}
		return replaceMembers(ctx, tx, p.ID, p.TestMethodIDs)
	})
}

func (r *TestPanelRepo) SetMembers(ctx context.Context, panelID string, testMethodIDs []string) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM test_panels WHERE id = $1)`, panelID).Scan(&exists); err != nil {
			return fmt.Errorf("check test panel: %w", err)
		}
		if !exists {
			return errNotFound("test panel")
		}
		return replaceMembers(ctx, tx, panelID, testMethodIDs)
	})
}

func replaceMembers(ctx context.Context, tx pgx.Tx, panelID string, ids []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM test_panel_methods WHERE panel_id = $1`, panelID); err != nil {
		return fmt.Errorf("clear panel members: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	rows := make([][]any, len(ids))
	for i, id := range ids {
		rows[i] = []any{panelID, id, i}
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"test_panel_methods"}, []string{"panel_id", "test_method_id", "position"}, pgx.CopyFromRows(rows))
	if err != nil {
		return mapWriteErr("insert panel members", err)
	}
	return nil
}

func (r *TestPanelRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.TestPanel, int, error) {
	var w where
	w.search(f.Query, "code", "name")
	if f.ActiveOnly {
		w.raw("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM test_panels`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapReadErr("count test panels", err)
	}
	limit, args := w.page(f)
	query := `
		SELECT p.id, p.code, p.name, p.description, p.is_active, p.created_at, p.updated_at,
			COALESCE(ARRAY(SELECT m.test_method_id::text FROM test_panel_methods m WHERE m.panel_id = p.id ORDER BY m.position), '{}')
		FROM test_panels p` + w.String() + ` ORDER BY p.code` + limit
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list test panels: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.TestPanel, 0)
	for rows.Next() {
		var p entity.TestPanel
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.TestMethodIDs); err != nil {
			return nil, 0, fmt.Errorf("scan test panel: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

func (r *TestPanelRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM test_panels WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete test panel", err)
	}
	return expectOne(tag)
}
