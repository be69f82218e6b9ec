package workflow

import (
	"context"
	"time"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el lock de la ejecución y la actualización del lote sean atómicos.
type TxRunner interface {
	RunWorkflow(ctx context.Context, fn func(
		execRepo repository.WorkflowExecutionRepository,
		batchRepo repository.BatchRepository,
	) error) error
}

// Recorder recibe las métricas de transiciones y escaneos.
type Recorder interface {
	ObserveTransition(action, result string, elapsed time.Duration)
	ObserveScan(action, result string)
}

// NopRecorder descarta las métricas (tests y METRICS_ENABLED=false).
type NopRecorder struct{}

func (NopRecorder) ObserveTransition(string, string, time.Duration) {}
func (NopRecorder) ObserveScan(string, string)                      {}

// BoardReader arma el tablero de un lote; lo implementa usecase.BatchUseCase.
type BoardReader interface {
	Board(ctx context.Context, batchID string, page dto.PageRequest) (*dto.BoardResponse, error)
}
