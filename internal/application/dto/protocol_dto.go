package dto

import "time"

// CreateProtocolRequest entrada para crear un protocolo.
type CreateProtocolRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Description   string   `json:"description"`
	Version       string   `json:"version"`
	TestMethodIDs []string `json:"test_method_ids"`
}

// UpdateProtocolRequest actualización parcial.
type UpdateProtocolRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Version     *string `json:"version"`
	IsActive    *bool   `json:"is_active"`
}

// CreateProtocolStepRequest entrada para agregar un paso.
type CreateProtocolStepRequest struct {
	StepNumber      int    `json:"step_number" validate:"required,min=1"`
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	ExpectedMinutes int    `json:"expected_minutes" validate:"min=0"`
}

// UpdateProtocolStepRequest actualización parcial de un paso.
type UpdateProtocolStepRequest struct {
	StepNumber      *int    `json:"step_number"`
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ExpectedMinutes *int    `json:"expected_minutes"`
}

// ProtocolStepResponse salida de un paso.
type ProtocolStepResponse struct {
	ID              string    `json:"id"`
	ProtocolID      string    `json:"protocol_id"`
	StepNumber      int       `json:"step_number"`
	Name            string    `json:"name"`
	StepToken       string    `json:"step_token"`
	Description     string    `json:"description"`
	ExpectedMinutes int       `json:"expected_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProtocolResponse salida de un protocolo; Steps/TestMethods solo en detalle.
type ProtocolResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Version     string                 `json:"version"`
	IsActive    bool                   `json:"is_active"`
	Steps       []ProtocolStepResponse `json:"steps,omitempty"`
	TestMethods []TestMethodResponse   `json:"test_methods,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ProtocolListResponse lista paginada.
type ProtocolListResponse struct {
	Items []ProtocolResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
