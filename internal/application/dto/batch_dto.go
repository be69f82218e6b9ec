package dto

import "time"

// CreateBatchRequest entrada para crear un lote.
type CreateBatchRequest struct {
	BatchNumber string   `json:"batch_number" validate:"required"`
	ProtocolID  string   `json:"protocol_id" validate:"required,uuid"`
	Notes       string   `json:"notes"`
	OrderIDs    []string `json:"order_ids"`
}

// UpdateBatchRequest actualización parcial; el estado se deriva de las ejecuciones.
type UpdateBatchRequest struct {
	BatchNumber *string `json:"batch_number"`
	Notes       *string `json:"notes"`
}

// AssignOrdersRequest órdenes a agregar al lote.
type AssignOrdersRequest struct {
	OrderIDs []string `json:"order_ids" validate:"required,min=1"`
}

// AssignOrdersResponse cantidad de órdenes asignadas.
type AssignOrdersResponse struct {
	Assigned int `json:"assigned"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID          string    `json:"id"`
	BatchNumber string    `json:"batch_number"`
	ProtocolID  string    `json:"protocol_id"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	Barcode     string    `json:"barcode"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BatchListResponse lista paginada.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ExecutionResponse salida de una ejecución de paso.
type ExecutionResponse struct {
	ID             string     `json:"id"`
	BatchID        string     `json:"batch_id"`
	ProtocolStepID string     `json:"protocol_step_id"`
	Status         string     `json:"status"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	StartedBy      *string    `json:"started_by,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CompletedBy    *string    `json:"completed_by,omitempty"`
	Notes          string     `json:"notes"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BoardRow un paso del protocolo con su ejecución para el lote y sus códigos.
type BoardRow struct {
	StepID          string     `json:"step_id"`
	StepNumber      int        `json:"step_number"`
	StepName        string     `json:"step_name"`
	ExpectedMinutes int        `json:"expected_minutes"`
	Status          string     `json:"status"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	StartedBy       *string    `json:"started_by,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CompletedBy     *string    `json:"completed_by,omitempty"`
	Notes           string     `json:"notes"`
	StartBarcode    string     `json:"start_barcode"`
	StopBarcode     string     `json:"stop_barcode"`
}

// BoardResponse tablero de avance de un lote (filas paginadas en memoria).
type BoardResponse struct {
	Batch BatchResponse `json:"batch"`
	Rows  []BoardRow    `json:"rows"`
	Page  PageResponse  `json:"page"`
}

// TransitionRequest cuerpo opcional de start/stop.
type TransitionRequest struct {
	Notes string `json:"notes"`
}

// ScanRequest código escaneado por la pistola lectora.
type ScanRequest struct {
	Code  string `json:"code" validate:"required"`
	Notes string `json:"notes"`
}

// ScanResponse resultado de procesar un código.
type ScanResponse struct {
	Action    string             `json:"action"`
	StepToken string             `json:"step_token,omitempty"`
	Execution *ExecutionResponse `json:"execution,omitempty"`
	Board     *BoardResponse     `json:"board"`
}

// BarcodeSheet datos de la hoja de códigos de un lote (JSON o PDF).
type BarcodeSheet struct {
	BatchNumber  string             `json:"batch_number"`
	BatchBarcode string             `json:"batch_barcode"`
	Steps        []StepBarcodeEntry `json:"steps"`
}

// StepBarcodeEntry códigos de inicio y fin de un paso.
type StepBarcodeEntry struct {
	StepNumber   int    `json:"step_number"`
	StepName     string `json:"step_name"`
	StartBarcode string `json:"start_barcode"`
	StopBarcode  string `json:"stop_barcode"`
}
