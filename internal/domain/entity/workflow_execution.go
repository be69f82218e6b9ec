package entity

import "time"

// Estados de ejecución de un paso para un lote.
const (
	ExecutionPending    = "Pending"
	ExecutionInProgress = "In Progress"
	ExecutionCompleted  = "Completed"
)

// WorkflowExecution avance de un paso de protocolo sobre un lote.
// Única por (BatchID, ProtocolStepID).
type WorkflowExecution struct {
	ID             string
	BatchID        string
	ProtocolStepID string
	Status         string
	StartedAt      *time.Time
	StartedBy      *string
	CompletedAt    *time.Time
	CompletedBy    *string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
