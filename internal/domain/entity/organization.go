package entity

import "time"

// Tipos de organización cliente.
const (
	OrgTypeClientLab  = "client_lab"
	OrgTypeHealthcare = "healthcare"
	OrgTypeOther      = "other"
)

// Organization laboratorio cliente o entidad de salud; dueña de sedes y contactos.
type Organization struct {
	ID        string
	Code      string // código corto único; lo usa la importación de órdenes
	Name      string
	Type      string
	Email     string
	Phone     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidOrgType informa si t es un tipo de organización conocido.
func ValidOrgType(t string) bool {
	switch t {
	case OrgTypeClientLab, OrgTypeHealthcare, OrgTypeOther:
		return true
	}
	return false
}
