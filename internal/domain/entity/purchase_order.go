package entity

import "time"

// Estados de la orden de compra.
const (
	PurchaseOrderPending   = "PENDING"
	PurchaseOrderReceived  = "RECEIVED"
	PurchaseOrderCancelled = "CANCELLED"
)

// PurchaseOrder orden de compra a proveedor. ProductID y WarehouseID se resuelven al crearla;
// ProductName y WarehouseName guardan los nombres vigentes en ese momento.
type PurchaseOrder struct {
	ID            string
	SupplierName  string
	ProductID     string
	ProductName   string
	WarehouseID   string
	WarehouseName string
	Quantity      int
	OrderDate     time.Time
	UserID        string
	Status        string
	ReceivedAt    *time.Time
	ReceivedBy    string
}

// IsReceived indica si la orden ya fue recibida.
func (po *PurchaseOrder) IsReceived() bool { return po.Status == PurchaseOrderReceived }

// IsCancelled indica si la orden fue cancelada.
func (po *PurchaseOrder) IsCancelled() bool { return po.Status == PurchaseOrderCancelled }
