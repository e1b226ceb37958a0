package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleSocio     = "socio"     // socio del despacho
	RoleAbogado   = "abogado"   // abogado asociado
	RoleAsistente = "asistente" // asistente / paralegal
)

// ValidRoles roles aceptados en registro.
var ValidRoles = map[string]bool{
	RoleAdmin:     true,
	RoleSocio:     true,
	RoleAbogado:   true,
	RoleAsistente: true,
}

// User representa un usuario del sistema (pertenece a un Firm).
type User struct {
	ID           string
	FirmID       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, socio, abogado, asistente
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
