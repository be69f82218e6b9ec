package entity

import "time"

// Location sede o punto de toma de muestras de una organización.
type Location struct {
	ID             string
	OrganizationID string
	Code           string // único dentro de la organización
	Name           string
	Address        string
	City           string
	State          string
	PostalCode     string
	Phone          string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
