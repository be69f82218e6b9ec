package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactColumns = `id, organization_id, location_id, first_name, last_name, email, phone, title, is_primary, created_at, updated_at`

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var c entity.Contact
	err := row.Scan(&c.ID, &c.OrganizationID, &c.LocationID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Title, &c.IsPrimary, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.OrganizationID, c.LocationID, c.FirstName, c.LastName, c.Email, c.Phone, c.Title, c.IsPrimary,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("insert contact", err)
	}
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	query := `
		UPDATE contacts SET location_id = $2, first_name = $3, last_name = $4, email = $5, phone = $6,
			title = $7, is_primary = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.LocationID, c.FirstName, c.LastName, c.Email, c.Phone, c.Title, c.IsPrimary, c.UpdatedAt,
	)
	if err != nil {
		return mapWriteErr("update contact", err)
	}
	return expectOne(tag)
}

// List filtra por organización, sede y q (nombre/apellido/email). Los contactos principales primero.
func (r *ContactRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Contact, int, error) {
	var w where
	w.search(f.Query, "first_name", "last_name", "email")
	if f.OrganizationID != "" {
		w.add("organization_id = ?", f.OrganizationID)
	}
	if f.LocationID != "" {
		w.add("location_id = ?", f.LocationID)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapReadErr("count contacts", err)
	}
	limit, args := w.page(f)
	query := `SELECT ` + contactColumns + ` FROM contacts` + w.String() + ` ORDER BY is_primary DESC, last_name, first_name` + limit
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return mapWriteErr("delete contact", err)
	}
	return expectOne(tag)
}
