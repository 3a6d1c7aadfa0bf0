package entity

import "time"

// StockAlert alerta de stock bajo sobre un Inventory. Quantity y Threshold son la foto al momento
// de crearla. Solo puede existir una alerta sin resolver por inventario.
type StockAlert struct {
	ID          string
	InventoryID string
	Quantity    int
	Threshold   int
	CreatedAt   time.Time
	Resolved    bool
	ResolvedAt  *time.Time
}
