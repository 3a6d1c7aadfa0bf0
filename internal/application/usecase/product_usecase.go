package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Nombre y SKU deben ser únicos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.ensureNameFree(ctx, in.Name); err != nil {
		return nil, err
	}
	if err := uc.ensureSKUFree(ctx, in.SKU); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		SKU:         in.SKU,
		Category:    in.Category,
		Price:       in.Price,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update actualiza un producto. Cambiar nombre o SKU a un valor de otro producto es conflicto;
// mantener el valor actual está permitido.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != product.Name {
			if err := uc.ensureNameFree(ctx, name); err != nil {
				return nil, err
			}
		}
		product.Name = name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku != product.SKU {
			if err := uc.ensureSKUFree(ctx, sku); err != nil {
				return nil, err
			}
		}
		product.SKU = sku
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) ensureNameFree(ctx context.Context, name string) error {
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: ya existe un producto con nombre %q", domain.ErrDuplicate, name)
	}
	return nil
}

func (uc *ProductUseCase) ensureSKUFree(ctx context.Context, sku string) error {
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: ya existe un producto con SKU %q", domain.ErrDuplicate, sku)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
