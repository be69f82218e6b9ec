package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTestMethodRequest entrada para crear una prueba del catálogo.
type CreateTestMethodRequest struct {
	Code           string          `json:"code" validate:"required,max=50"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	SpecimenType   string          `json:"specimen_type"`
	TurnaroundDays int             `json:"turnaround_days" validate:"min=0"`
	Price          decimal.Decimal `json:"price"`
}

// UpdateTestMethodRequest actualización parcial.
type UpdateTestMethodRequest struct {
	Code           *string          `json:"code"`
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Category       *string          `json:"category"`
	SpecimenType   *string          `json:"specimen_type"`
	TurnaroundDays *int             `json:"turnaround_days"`
	Price          *decimal.Decimal `json:"price"`
	IsActive       *bool            `json:"is_active"`
}

// TestMethodResponse salida de una prueba.
type TestMethodResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	SpecimenType   string          `json:"specimen_type"`
	TurnaroundDays int             `json:"turnaround_days"`
	Price          decimal.Decimal `json:"price"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TestMethodListResponse lista paginada.
type TestMethodListResponse struct {
	Items []TestMethodResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// CreateTestPanelRequest entrada para crear un panel.
type CreateTestPanelRequest struct {
	Code          string   `json:"code" validate:"required,max=50"`
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Description   string   `json:"description"`
	TestMethodIDs []string `json:"test_method_ids"`
}

// UpdateTestPanelRequest actualización parcial (sin miembros; ver SetMembersRequest).
type UpdateTestPanelRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// SetMembersRequest reemplaza las pruebas de un panel o protocolo.
type SetMembersRequest struct {
	TestMethodIDs []string `json:"test_method_ids"`
}

// TestPanelResponse salida de un panel.
type TestPanelResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	TestMethodIDs []string  `json:"test_method_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TestPanelListResponse lista paginada.
type TestPanelListResponse struct {
	Items []TestPanelResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
