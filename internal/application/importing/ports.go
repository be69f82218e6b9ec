// Package importing carga masiva de órdenes (CSV) y del catálogo de pruebas/paneles (TSV)
// con éxito parcial: las filas inválidas se reportan como advertencias y el resto se persiste en una transacción.
package importing

import (
	"context"

	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// TxRunner ejecuta la escritura de una importación dentro de una transacción de BD.
type TxRunner interface {
	RunImport(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		methodRepo repository.TestMethodRepository,
		panelRepo repository.TestPanelRepository,
	) error) error
}

// Archiver guarda el archivo original recibido; devuelve su ubicación.
type Archiver interface {
	Archive(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Recorder recibe las métricas de importación.
type Recorder interface {
	ObserveImport(kind string, imported, skipped int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveImport(string, int, int) {}
