package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TestMethod prueba de laboratorio ofrecida (catálogo).
type TestMethod struct {
	ID             string
	Code           string // único
	Name           string
	Description    string
	Category       string
	SpecimenType   string // sangre, orina, hisopo...
	TurnaroundDays int
	Price          decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TestPanel agrupación de pruebas que se solicitan juntas.
type TestPanel struct {
	ID            string
	Code          string
	Name          string
	Description   string
	IsActive      bool
	TestMethodIDs []string // miembros (tabla test_panel_methods)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
