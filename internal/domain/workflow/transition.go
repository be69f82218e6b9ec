// Package workflow máquina de estados de la ejecución de pasos de protocolo sobre lotes
// (servicio de dominio, sin dependencias de infraestructura).
//
//	Pending ──Start──▶ In Progress ──Stop──▶ Completed
//	              ▲        │
//	              └─Start──┘   (reinicio: re-sella started_at/started_by sobre la misma fila)
package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

// Start pasa la ejecución a In Progress sellando inicio. Completed no se reabre.
func Start(exec *entity.WorkflowExecution, userID string, now time.Time) error {
	if exec == nil || strings.TrimSpace(userID) == "" {
		return domain.ErrInvalidInput
	}
	switch exec.Status {
	case entity.ExecutionPending, entity.ExecutionInProgress, "":
	default:
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, exec.Status, entity.ExecutionInProgress)
	}
	exec.Status = entity.ExecutionInProgress
	exec.StartedAt = &now
	exec.StartedBy = &userID
	exec.CompletedAt = nil
	exec.CompletedBy = nil
	exec.UpdatedAt = now
	return nil
}

// Complete pasa la ejecución de In Progress a Completed sellando fin y notas.
func Complete(exec *entity.WorkflowExecution, userID string, now time.Time, notes string) error {
	if exec == nil {
		return domain.ErrExecutionNotFound
	}
	if strings.TrimSpace(userID) == "" {
		return domain.ErrInvalidInput
	}
	if exec.Status != entity.ExecutionInProgress {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, exec.Status, entity.ExecutionCompleted)
	}
	exec.Status = entity.ExecutionCompleted
	exec.CompletedAt = &now
	exec.CompletedBy = &userID
	if notes = strings.TrimSpace(notes); notes != "" {
		exec.Notes = notes
	}
	exec.UpdatedAt = now
	return nil
}

// CheckInvariants verifica que los sellos correspondan al estado.
func CheckInvariants(exec *entity.WorkflowExecution) error {
	switch exec.Status {
	case entity.ExecutionPending:
		return nil
	case entity.ExecutionInProgress:
		if exec.StartedAt == nil || exec.StartedBy == nil {
			return fmt.Errorf("%w: In Progress sin started_at/started_by", domain.ErrConflict)
		}
	case entity.ExecutionCompleted:
		if exec.StartedAt == nil || exec.CompletedAt == nil || exec.CompletedBy == nil {
			return fmt.Errorf("%w: Completed sin completed_at/completed_by", domain.ErrConflict)
		}
	default:
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrConflict, exec.Status)
	}
	return nil
}

// BatchStatus deriva el estado del lote a partir de sus ejecuciones.
// totalSteps es el número de pasos del protocolo del lote.
func BatchStatus(execs []*entity.WorkflowExecution, totalSteps int) string {
	started, completed := 0, 0
	for _, e := range execs {
		switch e.Status {
		case entity.ExecutionInProgress:
			started++
		case entity.ExecutionCompleted:
			started++
			completed++
		}
	}
	switch {
	case totalSteps > 0 && completed >= totalSteps:
		return entity.BatchStatusCompleted
	case started > 0:
		return entity.BatchStatusInProgress
	default:
		return entity.BatchStatusOpen
	}
}
