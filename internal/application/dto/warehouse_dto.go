package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventory-ims/internal/domain"
)

// WarehouseRequest entrada para crear o actualizar una bodega.
type WarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Validate exige nombre.
func (r *WarehouseRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	return nil
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
