package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes (muestra x prueba). (organization_id, sample_id, test_method_id) es único.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, organization_id, location_id, contact_id, sample_id, sample_type, test_method_id, batch_id,
	status, priority, collected_at, received_at, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrganizationID, &o.LocationID, &o.ContactID, &o.SampleID, &o.SampleType, &o.TestMethodID,
		&o.BatchID, &o.Status, &o.Priority, &o.CollectedAt, &o.ReceivedAt, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrganizationID, o.LocationID, o.ContactID, o.SampleID, o.SampleType, o.TestMethodID, o.BatchID,
		o.Status, o.Priority, o.CollectedAt, o.ReceivedAt, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("insert order", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET location_id = $2, contact_id = $3, sample_type = $4, batch_id = $5, status = $6,
			priority = $7, collected_at = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.LocationID, o.ContactID, o.SampleType, o.BatchID, o.Status, o.Priority, o.CollectedAt, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update order", err)
	}
	return expectOne(tag)
}

// List filtros: q (sample_id), organización, sede, lote, estado. Más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Order, int, error) {
	var w where
	w.search(f.Query, "sample_id", "notes")
	if f.OrganizationID != "" {
		w.add("organization_id = ?", f.OrganizationID)
	}
	if f.LocationID != "" {
		w.add("location_id = ?", f.LocationID)
	}
	if f.BatchID != "" {
		w.add("batch_id = ?", f.BatchID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapReadErr("count orders", err)
	}
	limit, args := w.page(f)
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders`+w.String()+` ORDER BY received_at DESC, sample_id`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete order", err)
	}
	return expectOne(tag)
}

func (r *OrderRepo) Exists(ctx context.Context, organizationID, sampleID, testMethodID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE organization_id = $1 AND sample_id = $2 AND test_method_id = $3)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, organizationID, sampleID, testMethodID).Scan(&ok); err != nil {
		return false, fmt.Errorf("order exists: %w", err)
	}
	return ok, nil
}

// AssignBatch solo mueve órdenes en Received; las ya asignadas o cerradas se ignoran.
func (r *OrderRepo) AssignBatch(ctx context.Context, batchID string, orderIDs []string, now time.Time) (int, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	query := `
		UPDATE orders SET batch_id = $1, status = 'Batched', updated_at = $3
		WHERE id = ANY($2::uuid[]) AND status = 'Received'`
	tag, err := r.q.Exec(ctx, query, batchID, orderIDs, now)
	if err != nil {
		return 0, mapWriteErr("assign orders to batch", err)
	}
	return int(tag.RowsAffected()), nil
}
