package reporting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/reporting"
)

func date(s string) time.Time {
	t, err := time.Parse(reporting.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mov(typ string, qty int, cost int64, at time.Time) *entity.InventoryMovement {
	return &entity.InventoryMovement{Type: typ, Quantity: qty, UnitCost: decimal.NewFromInt(cost), Date: at}
}

func TestNewWindow_IncluyeDiaFinalCompleto(t *testing.T) {
	w := reporting.NewWindow(date("2024-03-01"), date("2024-03-07"))

	assert.True(t, w.Contains(date("2024-03-01")))
	assert.True(t, w.Contains(date("2024-03-07").Add(23*time.Hour+59*time.Minute)))
	assert.False(t, w.Contains(date("2024-03-08")))
	assert.False(t, w.Contains(date("2024-02-29").Add(23*time.Hour)))
}

func TestDays_Inclusivo(t *testing.T) {
	days := reporting.Days(date("2024-02-28"), date("2024-03-01"))
	require.Len(t, days, 3)
	assert.Equal(t, "2024-02-29", days[1].Format(reporting.DateLayout))

	assert.Empty(t, reporting.Days(date("2024-03-02"), date("2024-03-01")))
}

func TestOnHand(t *testing.T) {
	movs := []*entity.InventoryMovement{
		mov(entity.MovementTypeInbound, 10, 0, date("2024-03-01")),
		mov(entity.MovementTypeOutbound, -4, 0, date("2024-03-03")),
		mov(entity.MovementTypeAdjustment, 2, 0, date("2024-03-05")),
	}

	assert.Equal(t, 10, reporting.OnHandAt(movs, date("2024-03-01")))
	assert.Equal(t, 0, reporting.OnHandBefore(movs, date("2024-03-01")))
	assert.Equal(t, 6, reporting.OnHandAt(movs, date("2024-03-04")))
	assert.Equal(t, 8, reporting.OnHandBefore(movs, date("2024-03-06")))
}

func TestFirstOutboundUnitCost_PrimerMovimientoEnVentana(t *testing.T) {
	w := reporting.NewWindow(date("2024-03-01"), date("2024-03-31"))
	movs := []*entity.InventoryMovement{
		mov(entity.MovementTypeOutbound, -1, 99, date("2024-02-15")), // fuera de la ventana
		mov(entity.MovementTypeInbound, 5, 70, date("2024-03-02")),
		mov(entity.MovementTypeOutbound, -1, 60, date("2024-03-10")),
		mov(entity.MovementTypeOutbound, -1, 40, date("2024-03-05")),
	}

	assert.True(t, decimal.NewFromInt(60).Equal(reporting.FirstOutboundUnitCost(movs, w)))
	assert.True(t, reporting.FirstOutboundUnitCost(movs[:2], w).IsZero())
}

func TestTurnover_CasoReferencia(t *testing.T) {
	// Una salida de 5 a 50 dentro del periodo; existencia 10 al inicio y al final.
	w := reporting.NewWindow(date("2024-03-01"), date("2024-03-07"))
	movs := []*entity.InventoryMovement{mov(entity.MovementTypeOutbound, 5, 50, date("2024-03-03"))}

	cogs := reporting.CostOfGoodsSold(movs, w)
	avg := reporting.AverageInventory(10, 10)

	assert.Equal(t, "250.00", cogs.StringFixed(2))
	assert.Equal(t, "10.00", avg.StringFixed(2))
	assert.Equal(t, "25.00", reporting.TurnoverRatio(cogs, avg).StringFixed(2))
}

func TestCostOfGoodsSold_UsaMagnitudDeSalidas(t *testing.T) {
	w := reporting.NewWindow(date("2024-03-01"), date("2024-03-07"))
	movs := []*entity.InventoryMovement{
		mov(entity.MovementTypeOutbound, -3, 20, date("2024-03-02")),
		mov(entity.MovementTypeOutbound, -2, 15, date("2024-03-04")),
		mov(entity.MovementTypeInbound, 10, 100, date("2024-03-04")),
		mov(entity.MovementTypeOutbound, -7, 15, date("2024-03-08")),
	}

	assert.True(t, decimal.NewFromInt(90).Equal(reporting.CostOfGoodsSold(movs, w)))
}

func TestAverageInventory_RedondeoMitadArriba(t *testing.T) {
	assert.Equal(t, "2.50", reporting.AverageInventory(2, 3).StringFixed(2))
	assert.Equal(t, "0.00", reporting.AverageInventory(0, 0).StringFixed(2))
}

func TestTurnoverRatio(t *testing.T) {
	t.Run("promedio cero devuelve cero", func(t *testing.T) {
		assert.True(t, reporting.TurnoverRatio(decimal.NewFromInt(100), decimal.Zero).IsZero())
	})
	t.Run("redondea a dos decimales", func(t *testing.T) {
		r := reporting.TurnoverRatio(decimal.NewFromInt(10), decimal.NewFromInt(3))
		assert.Equal(t, "3.33", r.StringFixed(2))
		r = reporting.TurnoverRatio(decimal.NewFromInt(1), decimal.NewFromInt(8))
		assert.Equal(t, "0.13", r.String())
	})
}

func TestStockValue(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1000).Equal(reporting.StockValue(10, decimal.NewFromInt(100))))
}
