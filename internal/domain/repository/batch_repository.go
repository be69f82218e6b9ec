package repository

import (
	"context"
	"time"

	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para Batch (DIP).
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	GetByNumber(ctx context.Context, batchNumber string) (*entity.Batch, error)
	// GetForUpdate bloquea la fila del lote (SELECT ... FOR UPDATE); serializa las transiciones del lote.
	GetForUpdate(ctx context.Context, id string) (*entity.Batch, error)
	Update(ctx context.Context, b *entity.Batch) error
	UpdateStatus(ctx context.Context, id, status string, now time.Time) error
	List(ctx context.Context, f ListFilter) ([]*entity.Batch, int, error)
	// LongestNumber devuelve el número de lote más largo del protocolo ("" si no tiene lotes).
	LongestNumber(ctx context.Context, protocolID string) (string, error)
	Delete(ctx context.Context, id string) error
}

// WorkflowExecutionRepository define el puerto de persistencia para WorkflowExecution.
// Las variantes ForUpdate bloquean la fila (SELECT ... FOR UPDATE); usar dentro de una transacción.
type WorkflowExecutionRepository interface {
	// EnsureForUpdate crea la fila en Pending si no existe y la devuelve bloqueada.
	EnsureForUpdate(ctx context.Context, batchID, stepID string, now time.Time) (*entity.WorkflowExecution, error)
	// GetForUpdate devuelve la fila bloqueada o nil si no existe.
	GetForUpdate(ctx context.Context, batchID, stepID string) (*entity.WorkflowExecution, error)
	Update(ctx context.Context, e *entity.WorkflowExecution) error
	ListByBatch(ctx context.Context, batchID string) ([]*entity.WorkflowExecution, error)
}
