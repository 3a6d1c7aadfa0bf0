package dto

import "time"

// StockAlertResponse salida de una alerta de stock bajo.
type StockAlertResponse struct {
	ID            string     `json:"id"`
	InventoryID   string     `json:"inventoryId"`
	ProductName   string     `json:"productName"`
	WarehouseName string     `json:"warehouseName"`
	Quantity      int        `json:"quantity"`
	Threshold     int        `json:"threshold"`
	CreatedAt     time.Time  `json:"createdAt"`
	Resolved      bool       `json:"resolved"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
}
