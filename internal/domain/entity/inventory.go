package entity

import "time"

// DefaultReorderThreshold umbral de reorden cuando la petición no lo especifica.
const DefaultReorderThreshold = 10

// Inventory es la existencia de un producto en una bodega. El par (ProductID, WarehouseID) es único.
type Inventory struct {
	ID               string
	ProductID        string
	WarehouseID      string
	Quantity         int
	ReorderThreshold int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLowStock indica si la cantidad está por debajo del umbral de reorden.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity < i.ReorderThreshold
}
