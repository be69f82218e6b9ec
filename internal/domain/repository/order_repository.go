package repository

import (
	"context"
	"time"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, o *entity.Order) error
	List(ctx context.Context, f ListFilter) ([]*entity.Order, int, error)
	Delete(ctx context.Context, id string) error
	// Exists informa si ya existe la orden (organización, muestra, prueba).
	Exists(ctx context.Context, organizationID, sampleID, testMethodID string) (bool, error)
	// AssignBatch asigna las órdenes al lote y las marca Batched; devuelve cuántas cambió.
	AssignBatch(ctx context.Context, batchID string, orderIDs []string, now time.Time) (int, error)
}
