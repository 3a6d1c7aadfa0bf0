package repository

import (
	"context"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
)

// StockAlertRepository define el puerto de persistencia para alertas de stock bajo.
type StockAlertRepository interface {
	// Create inserta la alerta; devuelve false sin error si ya existe una alerta
	// sin resolver para el mismo inventario.
	Create(ctx context.Context, alert *entity.StockAlert) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.StockAlert, error)
	ExistsUnresolved(ctx context.Context, inventoryID string) (bool, error)
	ListUnresolved(ctx context.Context) ([]*entity.StockAlert, error)
	Update(ctx context.Context, alert *entity.StockAlert) error
}
