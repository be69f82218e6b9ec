package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación de OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Acepta pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

const organizationColumns = `id, code, name, type, email, phone, address, is_active, created_at, updated_at`

func scanOrganization(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	err := row.Scan(&o.ID, &o.Code, &o.Name, &o.Type, &o.Email, &o.Phone, &o.Address, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Code, org.Name, org.Type, org.Email, org.Phone, org.Address, org.IsActive,
		org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("insert organization", err)
	}
	return nil
}

// GetByID obtiene una organización por ID; nil si no existe.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.getOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
}

// GetByCode búsqueda por código exacto (importación de órdenes).
func (r *OrganizationRepo) GetByCode(ctx context.Context, code string) (*entity.Organization, error) {
	return r.getOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE code = $1`, code)
}

func (r *OrganizationRepo) getOne(ctx context.Context, query string, arg string) (*entity.Organization, error) {
	o, err := scanOrganization(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, nil
}

func (r *OrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	query := `
		UPDATE organizations SET code = $2, name = $3, type = $4, email = $5, phone = $6, address = $7,
			is_active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		org.ID, org.Code, org.Name, org.Type, org.Email, org.Phone, org.Address, org.IsActive, org.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update organization", err)
	}
	return expectOne(tag)
}

// List filtra por q (código/nombre) y activas; orden por nombre.
func (r *OrganizationRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Organization, int, error) {
	var w where
	w.search(f.Query, "code", "name")
	if f.ActiveOnly {
		w.raw("is_active")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM organizations`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapReadErr("count organizations", err)
	}
	limit, args := w.page(f)
	rows, err := r.q.Query(ctx, `SELECT `+organizationColumns+` FROM organizations`+w.String()+` ORDER BY name, code`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Organization, 0)
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// Delete elimina la organización. Con sedes, contactos u órdenes la FK devuelve ErrConflict.
func (r *OrganizationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete organization", err)
	}
	return expectOne(tag)
}
