package entity

import "time"

// Roles válidos para User.
const (
	RoleUser    = "USER"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	CreatedAt    time.Time
}

// IsValidRole valida el rol.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}
