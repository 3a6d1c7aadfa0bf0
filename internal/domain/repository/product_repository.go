package repository

import (
	"context"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get devuelven (nil, nil) si el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
