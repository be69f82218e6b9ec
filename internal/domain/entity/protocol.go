package entity

import "time"

// Protocol procedimiento de laboratorio de varios pasos; cada lote se procesa bajo uno.
type Protocol struct {
	ID          string
	Name        string
	Description string
	Version     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Cargados con GetByID (embebidos); vacíos en listados.
	Steps       []ProtocolStep
	TestMethods []TestMethod
}

// ProtocolStep etapa de un protocolo; tiene código de barras de inicio y de fin.
type ProtocolStep struct {
	ID              string
	ProtocolID      string
	StepNumber      int // orden dentro del protocolo, único
	Name            string
	Description     string
	ExpectedMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
