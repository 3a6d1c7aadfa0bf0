package usecase

import "github.com/jhoicas/inventory-ims/internal/domain/entity"

// Caller identidad del usuario que invoca una operación, tomada del token de la petición.
type Caller struct {
	UserID   string
	Username string
	Role     string
}

// HasRole indica si el rol del invocante está entre los dados.
func (c Caller) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// ReportingRoles roles autorizados a consultar reportes.
var ReportingRoles = []string{entity.RoleAdmin, entity.RoleManager}
