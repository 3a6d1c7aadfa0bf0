package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ims/internal/domain"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Validate verifica campos requeridos y precio no negativo.
func (r *CreateProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = strings.TrimSpace(r.SKU)
	if r.Name == "" || r.SKU == "" {
		return fmt.Errorf("%w: name y sku son requeridos", domain.ErrInvalidInput)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("%w: price debe ser >= 0", domain.ErrInvalidInput)
	}
	return nil
}

// UpdateProductRequest entrada para actualizar un producto. Los campos nil no se modifican.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	SKU         *string          `json:"sku"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

// Validate rechaza nombre/sku vacíos y precio negativo.
func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("%w: name no puede ser vacío", domain.ErrInvalidInput)
	}
	if r.SKU != nil && strings.TrimSpace(*r.SKU) == "" {
		return fmt.Errorf("%w: sku no puede ser vacío", domain.ErrInvalidInput)
	}
	if r.Price != nil && r.Price.IsNegative() {
		return fmt.Errorf("%w: price debe ser >= 0", domain.ErrInvalidInput)
	}
	return nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
