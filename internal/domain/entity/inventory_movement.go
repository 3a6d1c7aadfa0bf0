package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeInbound    = "INBOUND"
	MovementTypeOutbound   = "OUTBOUND"
	MovementTypeAdjustment = "ADJUSTMENT"
)

// ManualAdjustmentReference referencia de los movimientos generados al editar un inventario.
const ManualAdjustmentReference = "Manual adjustment"

// InventoryMovement es un registro inmutable del log de movimientos.
// Quantity es con signo: positivo entrada/ajuste+, negativo salida/ajuste-.
type InventoryMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    int
	UnitCost    decimal.Decimal
	Date        time.Time
	Reference   string
}

// IsValidMovementType valida el tipo de movimiento.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeInbound, MovementTypeOutbound, MovementTypeAdjustment:
		return true
	}
	return false
}
