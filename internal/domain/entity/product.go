package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Name y SKU son únicos.
type Product struct {
	ID          string
	Name        string
	SKU         string
	Category    string
	Price       decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
