package entity

import "time"

// Contact persona de contacto de una organización (opcionalmente ligada a una sede).
type Contact struct {
	ID             string
	OrganizationID string
	LocationID     *string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Title          string
	IsPrimary      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName nombre y apellido.
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
