package entity

import "time"

// Estados de un lote.
const (
	BatchStatusOpen       = "Open"
	BatchStatusInProgress = "In Progress"
	BatchStatusCompleted  = "Completed"
)

// Batch agrupación de muestras procesadas juntas bajo un protocolo.
type Batch struct {
	ID          string
	BatchNumber string // impreso en los códigos de barras; sin "_" ni espacios
	ProtocolID  string
	Status      string
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
