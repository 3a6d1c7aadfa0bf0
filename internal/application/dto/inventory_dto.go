package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
)

// InventoryRequest entrada para crear o actualizar un inventario.
// ReorderThreshold nil = 10 al crear, sin cambios al actualizar.
type InventoryRequest struct {
	ProductID        string `json:"productId"`
	WarehouseID      string `json:"warehouseId"`
	Quantity         *int   `json:"quantity"`
	ReorderThreshold *int   `json:"reorderThreshold"`
}

// Validate exige producto, bodega y cantidad >= 0.
func (r *InventoryRequest) Validate() error {
	if r.ProductID == "" || r.WarehouseID == "" {
		return fmt.Errorf("%w: productId y warehouseId son requeridos", domain.ErrInvalidInput)
	}
	if r.Quantity == nil {
		return fmt.Errorf("%w: quantity es requerido", domain.ErrInvalidInput)
	}
	if *r.Quantity < 0 {
		return fmt.Errorf("%w: quantity debe ser >= 0", domain.ErrInvalidInput)
	}
	if r.ReorderThreshold != nil && *r.ReorderThreshold < 0 {
		return fmt.Errorf("%w: reorderThreshold debe ser >= 0", domain.ErrInvalidInput)
	}
	return nil
}

// InventoryResponse salida de un inventario con nombres de producto y bodega.
type InventoryResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	ProductName      string    `json:"productName"`
	WarehouseID      string    `json:"warehouseId"`
	WarehouseName    string    `json:"warehouseName"`
	Quantity         int       `json:"quantity"`
	ReorderThreshold int       `json:"reorderThreshold"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// RecordMovementRequest body para POST /api/inventory-movements.
type RecordMovementRequest struct {
	ProductID   string           `json:"productId"`
	WarehouseID string           `json:"warehouseId"`
	Type        string           `json:"type"`
	Quantity    int              `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unitCost,omitempty"`
	Reference   string           `json:"reference"`
}

// Validate solo acepta entradas y salidas; los ajustes se generan al editar un inventario.
func (r *RecordMovementRequest) Validate() error {
	if r.ProductID == "" || r.WarehouseID == "" {
		return fmt.Errorf("%w: productId y warehouseId son requeridos", domain.ErrInvalidInput)
	}
	if r.Type != entity.MovementTypeInbound && r.Type != entity.MovementTypeOutbound {
		return fmt.Errorf("%w: type debe ser INBOUND u OUTBOUND", domain.ErrInvalidInput)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput)
	}
	if r.UnitCost != nil && r.UnitCost.IsNegative() {
		return fmt.Errorf("%w: unitCost debe ser >= 0", domain.ErrInvalidInput)
	}
	return nil
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	WarehouseID string          `json:"warehouseId"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Date        time.Time       `json:"movementDate"`
	Reference   string          `json:"reference"`
}
