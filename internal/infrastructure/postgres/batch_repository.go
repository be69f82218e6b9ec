package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, batch_number, protocol_id, status, notes, COALESCE(created_by::text, ''), created_at, updated_at`

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	if err := row.Scan(&b.ID, &b.BatchNumber, &b.ProtocolID, &b.Status, &b.Notes, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, batch_number, protocol_id, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.BatchNumber, b.ProtocolID, b.Status, b.Notes, nullable(b.CreatedBy), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("insert batch", err)
	}
	return nil
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)
}

// GetByNumber búsqueda por el número impreso en los códigos de barras.
func (r *BatchRepo) GetByNumber(ctx context.Context, batchNumber string) (*entity.Batch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM batches WHERE batch_number = $1`, batchNumber)
}

// GetForUpdate bloquea la fila del lote hasta el fin de la transacción.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1 FOR UPDATE`, id)
}

func (r *BatchRepo) getOne(ctx context.Context, query, arg string) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `UPDATE batches SET batch_number = $2, notes = $3, status = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, b.ID, b.BatchNumber, b.Notes, b.Status, b.UpdatedAt)
	if err != nil {
		return mapWriteErr("update batch", err)
	}
	return expectOne(tag)
}

func (r *BatchRepo) UpdateStatus(ctx context.Context, id, status string, now time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE batches SET status = $2, updated_at = $3 WHERE id = $1`, id, status, now)
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	return expectOne(tag)
}

// List filtros: q (número/notas), protocolo, estado. Más recientes primero.
func (r *BatchRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Batch, int, error) {
	var w where
	w.search(f.Query, "batch_number", "notes")
	if f.ProtocolID != "" {
		w.add("protocol_id = ?", f.ProtocolID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM batches`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapReadErr("count batches", err)
	}
	limit, args := w.page(f)
	rows, err := r.q.Query(ctx, `SELECT `+batchColumns+` FROM batches`+w.String()+` ORDER BY created_at DESC, batch_number`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Batch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

// LongestNumber acota el largo de los códigos START/STOP que ya se imprimieron para el protocolo.
func (r *BatchRepo) LongestNumber(ctx context.Context, protocolID string) (string, error) {
	var n string
	err := r.q.QueryRow(ctx, `
		SELECT batch_number FROM batches
		WHERE protocol_id = $1
		ORDER BY length(batch_number) DESC, batch_number
		LIMIT 1`, protocolID).Scan(&n)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("longest batch number: %w", err)
	}
	return n, nil
}

// Delete devuelve las órdenes del lote a Received y borra el lote (las ejecuciones caen en cascada).
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		release := `
			UPDATE orders SET batch_id = NULL, status = 'Received', updated_at = now()
			WHERE batch_id = $1 AND status = 'Batched'`
		if _, err := tx.Exec(ctx, release, id); err != nil {
			return fmt.Errorf("release batch orders: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
		if err != nil {
			return mapWriteErr("delete batch", err)
		}
		return expectOne(tag)
	})
}

var _ repository.WorkflowExecutionRepository = (*WorkflowExecutionRepo)(nil)

// WorkflowExecutionRepo una fila por (batch_id, protocol_step_id). Las variantes ForUpdate
// solo tienen sentido dentro de la transacción de TxRunner.RunWorkflow.
type WorkflowExecutionRepo struct {
	q Querier
}

func NewWorkflowExecutionRepository(q Querier) *WorkflowExecutionRepo {
	return &WorkflowExecutionRepo{q: q}
}

const execColumns = `id, batch_id, protocol_step_id, status, started_at, started_by::text, completed_at,
	completed_by::text, notes, created_at, updated_at`

func scanExecution(row pgx.Row) (*entity.WorkflowExecution, error) {
	var e entity.WorkflowExecution
	err := row.Scan(&e.ID, &e.BatchID, &e.ProtocolStepID, &e.Status, &e.StartedAt, &e.StartedBy, &e.CompletedAt,
		&e.CompletedBy, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EnsureForUpdate inserta la fila Pending si falta (ON CONFLICT DO NOTHING) y la lee con FOR UPDATE.
// Dos inicios concurrentes acaban sobre la misma fila: el segundo espera el lock del primero.
func (r *WorkflowExecutionRepo) EnsureForUpdate(ctx context.Context, batchID, stepID string, now time.Time) (*entity.WorkflowExecution, error) {
	insert := `
		INSERT INTO workflow_executions (id, batch_id, protocol_step_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (batch_id, protocol_step_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, uuid.New().String(), batchID, stepID, entity.ExecutionPending, now); err != nil {
		return nil, mapWriteErr("ensure workflow execution", err)
	}
	e, err := r.GetForUpdate(ctx, batchID, stepID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("ensure workflow execution: fila no visible tras insertar")
	}
	return e, nil
}

// GetForUpdate nil si el paso no se ha iniciado nunca para el lote.
func (r *WorkflowExecutionRepo) GetForUpdate(ctx context.Context, batchID, stepID string) (*entity.WorkflowExecution, error) {
	query := `SELECT ` + execColumns + ` FROM workflow_executions
		WHERE batch_id = $1 AND protocol_step_id = $2 FOR UPDATE`
	e, err := scanExecution(r.q.QueryRow(ctx, query, batchID, stepID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock workflow execution: %w", err)
	}
	return e, nil
}

func (r *WorkflowExecutionRepo) Update(ctx context.Context, e *entity.WorkflowExecution) error {
	query := `
		UPDATE workflow_executions SET status = $2, started_at = $3, started_by = $4, completed_at = $5,
			completed_by = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		e.ID, e.Status, e.StartedAt, e.StartedBy, e.CompletedAt, e.CompletedBy, e.Notes, e.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update workflow execution", err)
	}
	return expectOne(tag)
}

// ListByBatch ejecuciones del lote en el orden de los pasos.
func (r *WorkflowExecutionRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.WorkflowExecution, error) {
	query := `
		SELECT e.id, e.batch_id, e.protocol_step_id, e.status, e.started_at, e.started_by::text, e.completed_at,
			e.completed_by::text, e.notes, e.created_at, e.updated_at
		FROM workflow_executions e
		JOIN protocol_steps s ON s.id = e.protocol_step_id
		WHERE e.batch_id = $1
		ORDER BY s.step_number`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list workflow executions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.WorkflowExecution, 0)
	for rows.Next() {
		e, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workflow execution: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
