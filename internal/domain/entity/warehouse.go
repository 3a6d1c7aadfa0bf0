package entity

import "time"

// Warehouse representa una bodega. El nombre es único sin distinguir mayúsculas.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
