package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleTechnician = "technician"
)

// User usuario del panel de operaciones.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, supervisor, technician
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole informa si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleTechnician:
		return true
	}
	return false
}
