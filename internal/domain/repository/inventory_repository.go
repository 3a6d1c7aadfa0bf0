package repository

import (
	"context"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para Inventory.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	GetByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	List(ctx context.Context) ([]*entity.Inventory, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	Delete(ctx context.Context, id string) error
}
