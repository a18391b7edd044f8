package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"   // puede importar planillas y cargar maestros
	RoleAnalyst = "analyst" // solo lectura de curvas y reportes
)

// User representa un usuario con acceso a la API.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, analyst
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
