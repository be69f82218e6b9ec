package repository

import (
	"context"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// La implementación vive en infrastructure.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByCode(ctx context.Context, code string) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
	List(ctx context.Context, f ListFilter) ([]*entity.Organization, int, error)
	Delete(ctx context.Context, id string) error
}
