package repository

import (
	"context"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos. Vacío = todos.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
}

// InventoryMovementRepository define el puerto de persistencia para el log de movimientos (solo inserción).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// List devuelve los movimientos en orden de almacenamiento (fecha de movimiento ascendente).
	List(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
}
