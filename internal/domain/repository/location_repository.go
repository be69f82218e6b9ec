package repository

import (
	"context"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, loc *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByCode(ctx context.Context, organizationID, code string) (*entity.Location, error)
	Update(ctx context.Context, loc *entity.Location) error
	List(ctx context.Context, f ListFilter) ([]*entity.Location, int, error)
	Delete(ctx context.Context, id string) error
}
