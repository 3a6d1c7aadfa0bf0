package repository

import (
	"context"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context) ([]*entity.PurchaseOrder, error)
	Update(ctx context.Context, po *entity.PurchaseOrder) error
}
