package repository

import (
	"context"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact (DIP).
type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	GetByID(ctx context.Context, id string) (*entity.Contact, error)
	Update(ctx context.Context, c *entity.Contact) error
	List(ctx context.Context, f ListFilter) ([]*entity.Contact, int, error)
	Delete(ctx context.Context, id string) error
}
