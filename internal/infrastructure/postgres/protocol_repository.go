package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var _ repository.ProtocolRepository = (*ProtocolRepo)(nil)

// ProtocolRepo protocolos; GetByID embebe pasos y pruebas asociadas.
type ProtocolRepo struct {
	q Querier
}

func NewProtocolRepository(q Querier) *ProtocolRepo {
	return &ProtocolRepo{q: q}
}

const protocolColumns = `id, name, description, version, is_active, created_at, updated_at`

func scanProtocol(row pgx.Row) (*entity.Protocol, error) {
	var p entity.Protocol
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Version, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProtocolRepo) Create(ctx context.Context, p *entity.Protocol) error {
	query := `INSERT INTO protocols (` + protocolColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.Version, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert protocol", err)
	}
	return nil
}

// GetByID devuelve el protocolo con Steps (por step_number) y TestMethods (por código).
func (r *ProtocolRepo) GetByID(ctx context.Context, id string) (*entity.Protocol, error) {
	p, err := scanProtocol(r.q.QueryRow(ctx, `SELECT `+protocolColumns+` FROM protocols WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get protocol: %w", err)
	}

	steps, err := NewProtocolStepRepository(r.q).ListByProtocol(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Steps = make([]entity.ProtocolStep, len(steps))
	for i, s := range steps {
		p.Steps[i] = *s
	}

	query := `
		SELECT m.id, m.code, m.name, m.description, m.category, m.specimen_type, m.turnaround_days, m.price,
			m.is_active, m.created_at, m.updated_at
		FROM protocol_test_methods ptm
		JOIN test_methods m ON m.id = ptm.test_method_id
		WHERE ptm.protocol_id = $1
		ORDER BY m.code`
	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list protocol test methods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanTestMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan protocol test method: %w", err)
		}
		p.TestMethods = append(p.TestMethods, *m)
	}
	return p, rows.Err()
}

func (r *ProtocolRepo) Update(ctx context.Context, p *entity.Protocol) error {
	query := `
		UPDATE protocols SET name = $2, description = $3, version = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.Version, p.IsActive, p.UpdatedAt)
	if err != nil {
		return mapWriteErr("update protocol", err)
	}
	return expectOne(tag)
}

func (r *ProtocolRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Protocol, int, error) {
	var w where
	w.search(f.Query, "name", "description")
	if f.ActiveOnly {
		w.raw("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM protocols`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapReadErr("count protocols", err)
	}
	limit, args := w.page(f)
	rows, err := r.q.Query(ctx, `SELECT `+protocolColumns+` FROM protocols`+w.String()+` ORDER BY name, version`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list protocols: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Protocol, 0)
	for rows.Next() {
		p, err := scanProtocol(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan protocol: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete falla con ErrConflict si hay lotes que usan el protocolo.
func (r *ProtocolRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM protocols WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete protocol", err)
	}
	return expectOne(tag)
}

func (r *ProtocolRepo) SetTestMethods(ctx context.Context, protocolID string, testMethodIDs []string) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM protocol_test_methods WHERE protocol_id = $1`, protocolID); err != nil {
			return fmt.Errorf("clear protocol test methods: %w", err)
		}
		if len(testMethodIDs) == 0 {
			return nil
		}
		query := `
			INSERT INTO protocol_test_methods (protocol_id, test_method_id)
			SELECT $1, unnest($2::uuid[])
			ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(ctx, query, protocolID, testMethodIDs); err != nil {
			return mapWriteErr("insert protocol test methods", err)
		}
		return nil
	})
}

var _ repository.ProtocolStepRepository = (*ProtocolStepRepo)(nil)

// ProtocolStepRepo pasos de protocolo; (protocol_id, step_number) es único.
type ProtocolStepRepo struct {
	q Querier
}

func NewProtocolStepRepository(q Querier) *ProtocolStepRepo {
	return &ProtocolStepRepo{q: q}
}

const stepColumns = `id, protocol_id, step_number, name, description, expected_minutes, created_at, updated_at`

func scanStep(row pgx.Row) (*entity.ProtocolStep, error) {
	var s entity.ProtocolStep
	err := row.Scan(&s.ID, &s.ProtocolID, &s.StepNumber, &s.Name, &s.Description, &s.ExpectedMinutes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ProtocolStepRepo) Create(ctx context.Context, s *entity.ProtocolStep) error {
	query := `INSERT INTO protocol_steps (` + stepColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, s.ID, s.ProtocolID, s.StepNumber, s.Name, s.Description, s.ExpectedMinutes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert protocol step", err)
	}
	return nil
}

func (r *ProtocolStepRepo) GetByID(ctx context.Context, id string) (*entity.ProtocolStep, error) {
	s, err := scanStep(r.q.QueryRow(ctx, `SELECT `+stepColumns+` FROM protocol_steps WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get protocol step: %w", err)
	}
	return s, nil
}

func (r *ProtocolStepRepo) Update(ctx context.Context, s *entity.ProtocolStep) error {
	query := `
		UPDATE protocol_steps SET step_number = $2, name = $3, description = $4, expected_minutes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.StepNumber, s.Name, s.Description, s.ExpectedMinutes, s.UpdatedAt)
	if err != nil {
		return mapWriteErr("update protocol step", err)
	}
	return expectOne(tag)
}

// Delete borra el paso. Con ejecuciones registradas la FK lo impide (ErrConflict).
func (r *ProtocolStepRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM protocol_steps WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete protocol step", err)
	}
	return expectOne(tag)
}

func (r *ProtocolStepRepo) ListByProtocol(ctx context.Context, protocolID string) ([]*entity.ProtocolStep, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stepColumns+` FROM protocol_steps WHERE protocol_id = $1 ORDER BY step_number`, protocolID)
	if err != nil {
		return nil, fmt.Errorf("list protocol steps: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ProtocolStep, 0)
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("scan protocol step: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
