// Package reporting contiene la aritmética pura de los reportes de inventario
// (rotación, valorización y tendencia) sobre el log de movimientos.
package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
)

// DateLayout formato ISO de fechas en filtros y reportes.
const DateLayout = "2006-01-02"

// Window periodo de reporte semiabierto [Start, End): Start es el inicio del primer día
// y End el inicio del día siguiente al último.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow construye la ventana para las fechas de calendario start..end (ambas incluidas).
func NewWindow(start, end time.Time) Window {
	s := StartOfDay(start)
	return Window{Start: s, End: StartOfDay(end).AddDate(0, 0, 1)}
}

// Contains indica si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// StartOfDay trunca t a las 00:00 de su día, conservando la zona horaria.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Days devuelve cada día de calendario entre start y end, ambos incluidos.
func Days(start, end time.Time) []time.Time {
	var days []time.Time
	last := StartOfDay(end)
	for d := StartOfDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// OnHandAt reconstruye la existencia sumando las cantidades de los movimientos con fecha <= at.
func OnHandAt(movements []*entity.InventoryMovement, at time.Time) int {
	total := 0
	for _, m := range movements {
		if !m.Date.After(at) {
			total += m.Quantity
		}
	}
	return total
}

// OnHandBefore igual que OnHandAt pero con fecha estrictamente anterior a at.
func OnHandBefore(movements []*entity.InventoryMovement, at time.Time) int {
	total := 0
	for _, m := range movements {
		if m.Date.Before(at) {
			total += m.Quantity
		}
	}
	return total
}

// FirstOutboundUnitCost devuelve el costo unitario del primer movimiento OUTBOUND (en el orden
// recibido) dentro de la ventana. Cero si no hay ninguno.
func FirstOutboundUnitCost(movements []*entity.InventoryMovement, w Window) decimal.Decimal {
	for _, m := range movements {
		if m.Type == entity.MovementTypeOutbound && w.Contains(m.Date) {
			return m.UnitCost
		}
	}
	return decimal.Zero
}

// CostOfGoodsSold suma costo unitario × cantidad de las salidas dentro de la ventana.
// Las salidas se guardan con cantidad negativa; se toma su magnitud.
func CostOfGoodsSold(movements []*entity.InventoryMovement, w Window) decimal.Decimal {
	cogs := decimal.Zero
	for _, m := range movements {
		if m.Type != entity.MovementTypeOutbound || !w.Contains(m.Date) {
			continue
		}
		qty := m.Quantity
		if qty < 0 {
			qty = -qty
		}
		cogs = cogs.Add(m.UnitCost.Mul(decimal.NewFromInt(int64(qty))))
	}
	return cogs
}

// AverageInventory (inicial + final) / 2 redondeado a 2 decimales, mitad hacia arriba.
func AverageInventory(startQty, endQty int) decimal.Decimal {
	sum := decimal.NewFromInt(int64(startQty) + int64(endQty))
	return sum.DivRound(decimal.NewFromInt(2), 2)
}

// TurnoverRatio COGS / inventario promedio a 2 decimales. Devuelve cero si el promedio no es positivo.
func TurnoverRatio(cogs, averageInventory decimal.Decimal) decimal.Decimal {
	if !averageInventory.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return cogs.DivRound(averageInventory, 2)
}

// StockValue cantidad en existencia × costo unitario.
func StockValue(quantity int, unitCost decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(int64(quantity)))
}
