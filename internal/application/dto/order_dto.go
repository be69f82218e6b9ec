package dto

import "time"

// CreateOrderRequest entrada para registrar una orden (muestra x prueba).
type CreateOrderRequest struct {
	OrganizationID string     `json:"organization_id" validate:"required,uuid"`
	LocationID     *string    `json:"location_id" validate:"omitempty,uuid"`
	ContactID      *string    `json:"contact_id" validate:"omitempty,uuid"`
	SampleID       string     `json:"sample_id" validate:"required"`
	SampleType     string     `json:"sample_type"`
	TestMethodID   string     `json:"test_method_id" validate:"required,uuid"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=routine stat"`
	CollectedAt    *time.Time `json:"collected_at"`
	Notes          string     `json:"notes"`
}

// UpdateOrderRequest actualización parcial (incluye cambio de estado).
type UpdateOrderRequest struct {
	Status      *string    `json:"status" validate:"omitempty,oneof=Received Batched Completed Cancelled"`
	Priority    *string    `json:"priority"`
	SampleType  *string    `json:"sample_type"`
	CollectedAt *time.Time `json:"collected_at"`
	Notes       *string    `json:"notes"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	LocationID     *string    `json:"location_id,omitempty"`
	ContactID      *string    `json:"contact_id,omitempty"`
	SampleID       string     `json:"sample_id"`
	SampleType     string     `json:"sample_type"`
	TestMethodID   string     `json:"test_method_id"`
	BatchID        *string    `json:"batch_id,omitempty"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	CollectedAt    *time.Time `json:"collected_at,omitempty"`
	ReceivedAt     time.Time  `json:"received_at"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// OrderListResponse lista paginada.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ImportWarning problema no fatal de una fila importada.
type ImportWarning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult resultado de una importación con éxito parcial.
type ImportResult struct {
	Imported  int             `json:"imported"`
	Skipped   int             `json:"skipped"`
	Warnings  []ImportWarning `json:"warnings"`
	ArchiveAt string          `json:"archived_at,omitempty"`
}
