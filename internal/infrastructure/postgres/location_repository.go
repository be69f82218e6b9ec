package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, organization_id, code, name, address, city, state, postal_code, phone, is_active, created_at, updated_at`

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(&l.ID, &l.OrganizationID, &l.Code, &l.Name, &l.Address, &l.City, &l.State, &l.PostalCode,
		&l.Phone, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepo) Create(ctx context.Context, loc *entity.Location) error {
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		loc.ID, loc.OrganizationID, loc.Code, loc.Name, loc.Address, loc.City, loc.State, loc.PostalCode,
		loc.Phone, loc.IsActive, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("insert location", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// GetByCode el código de sede es único dentro de la organización.
func (r *LocationRepo) GetByCode(ctx context.Context, organizationID, code string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE organization_id = $1 AND code = $2`
	l, err := scanLocation(r.q.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	return l, nil
}

func (r *LocationRepo) Update(ctx context.Context, loc *entity.Location) error {
	query := `
		UPDATE locations SET code = $2, name = $3, address = $4, city = $5, state = $6, postal_code = $7,
			phone = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		loc.ID, loc.Code, loc.Name, loc.Address, loc.City, loc.State, loc.PostalCode, loc.Phone, loc.IsActive, loc.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update location", err)
	}
	return expectOne(tag)
}

func (r *LocationRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Location, int, error) {
	var w where
	w.search(f.Query, "code", "name", "city")
	if f.OrganizationID != "" {
		w.add("organization_id = ?", f.OrganizationID)
	}
	if f.ActiveOnly {
		w.raw("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM locations`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapReadErr("count locations", err)
	}
	limit, args := w.page(f)
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM locations`+w.String()+` ORDER BY name, code`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete location", err)
	}
	return expectOne(tag)
}
