package usecase

import (
	"strconv"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
)

// ExportedReport documento generado por un ReportExporter.
type ExportedReport struct {
	Body        []byte
	ContentType string
	Extension   string
	ETag        string // opcional
}

// ReportExporter genera un documento a partir de la tabla de un reporte.
type ReportExporter interface {
	Format() string
	Export(table dto.ReportTable) (*ExportedReport, error)
}

// TurnoverTable convierte el reporte de rotación a tabla.
func TurnoverTable(rows []dto.InventoryTurnoverReport) dto.ReportTable {
	t := dto.ReportTable{
		Name:  "inventory-turnover",
		Title: "Rotación de inventario",
		Headers: []string{"productId", "productName", "warehouseId", "warehouseName", "periodStart", "periodEnd",
			"turnoverRatio", "costOfGoodsSold", "averageInventory", "unitCost"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ProductID, r.ProductName, r.WarehouseID, r.WarehouseName, r.PeriodStart, r.PeriodEnd,
			r.TurnoverRatio.StringFixed(2), r.CostOfGoodsSold.StringFixed(2),
			r.AverageInventory.StringFixed(2), r.UnitCost.StringFixed(2),
		})
	}
	return t
}

// ValuationTable convierte el reporte de valorización a tabla.
func ValuationTable(rows []dto.StockValuationReport) dto.ReportTable {
	t := dto.ReportTable{
		Name:    "stock-valuation",
		Title:   "Valorización de inventario",
		Headers: []string{"productId", "productName", "warehouseId", "warehouseName", "quantityOnHand", "unitCost", "totalValue"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ProductID, r.ProductName, r.WarehouseID, r.WarehouseName,
			strconv.Itoa(r.QuantityOnHand), r.UnitCost.StringFixed(2), r.TotalValue.StringFixed(2),
		})
	}
	return t
}

// TrendTable convierte el reporte de tendencia a tabla.
func TrendTable(rows []dto.InventoryTrendReport) dto.ReportTable {
	t := dto.ReportTable{
		Name:    "inventory-trends",
		Title:   "Tendencia de inventario",
		Headers: []string{"productId", "productName", "warehouseId", "warehouseName", "date", "quantityOnHand"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.ProductID, r.ProductName, r.WarehouseID, r.WarehouseName, r.Date, strconv.Itoa(r.QuantityOnHand),
		})
	}
	return t
}
