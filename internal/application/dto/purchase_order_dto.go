package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventory-ims/internal/domain"
)

// CreatePurchaseOrderRequest entrada para crear una orden de compra. Producto y bodega se
// pueden indicar por ID o por nombre exacto; el ID tiene prioridad.
type CreatePurchaseOrderRequest struct {
	SupplierName  string `json:"supplierName"`
	ProductID     string `json:"productId,omitempty"`
	ProductName   string `json:"productName,omitempty"`
	WarehouseID   string `json:"warehouseId,omitempty"`
	WarehouseName string `json:"warehouseName,omitempty"`
	Quantity      int    `json:"quantity"`
	UserID        string `json:"userId,omitempty"`
}

// Validate exige proveedor, referencia a producto y bodega, y cantidad positiva.
func (r *CreatePurchaseOrderRequest) Validate() error {
	r.SupplierName = strings.TrimSpace(r.SupplierName)
	if r.SupplierName == "" {
		return fmt.Errorf("%w: supplierName es requerido", domain.ErrInvalidInput)
	}
	if r.ProductID == "" && strings.TrimSpace(r.ProductName) == "" {
		return fmt.Errorf("%w: productId o productName es requerido", domain.ErrInvalidInput)
	}
	if r.WarehouseID == "" && strings.TrimSpace(r.WarehouseName) == "" {
		return fmt.Errorf("%w: warehouseId o warehouseName es requerido", domain.ErrInvalidInput)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput)
	}
	return nil
}

// FulfillPurchaseOrderRequest body opcional de POST /api/purchase-orders/:id/fulfill.
type FulfillPurchaseOrderRequest struct {
	ReceivedBy string `json:"receivedBy"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID            string     `json:"id"`
	SupplierName  string     `json:"supplierName"`
	ProductID     string     `json:"productId"`
	ProductName   string     `json:"productName"`
	WarehouseID   string     `json:"warehouseId"`
	WarehouseName string     `json:"warehouseName"`
	Quantity      int        `json:"quantity"`
	OrderDate     time.Time  `json:"orderDate"`
	UserID        string     `json:"userId"`
	Status        string     `json:"status"`
	ReceivedAt    *time.Time `json:"receivedAt,omitempty"`
	ReceivedBy    string     `json:"receivedBy,omitempty"`
}
