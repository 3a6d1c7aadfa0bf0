package dto

import "github.com/shopspring/decimal"

// ReportFilter filtros opcionales comunes a los reportes. Vacío = todos.
type ReportFilter struct {
	ProductID   string
	WarehouseID string
}

// InventoryTurnoverReport fila del reporte de rotación por producto y bodega.
type InventoryTurnoverReport struct {
	ProductID        string          `json:"productId"`
	ProductName      string          `json:"productName"`
	WarehouseID      string          `json:"warehouseId"`
	WarehouseName    string          `json:"warehouseName"`
	PeriodStart      string          `json:"periodStart"`
	PeriodEnd        string          `json:"periodEnd"`
	TurnoverRatio    decimal.Decimal `json:"turnoverRatio"`
	CostOfGoodsSold  decimal.Decimal `json:"costOfGoodsSold"`
	AverageInventory decimal.Decimal `json:"averageInventory"`
	UnitCost         decimal.Decimal `json:"unitCost"`
}

// StockValuationReport fila del reporte de valorización.
type StockValuationReport struct {
	ProductID      string          `json:"productId"`
	ProductName    string          `json:"productName"`
	WarehouseID    string          `json:"warehouseId"`
	WarehouseName  string          `json:"warehouseName"`
	QuantityOnHand int             `json:"quantityOnHand"`
	UnitCost       decimal.Decimal `json:"unitCost"`
	TotalValue     decimal.Decimal `json:"totalValue"`
}

// InventoryTrendReport fila diaria del reporte de tendencia.
type InventoryTrendReport struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	WarehouseID    string `json:"warehouseId"`
	WarehouseName  string `json:"warehouseName"`
	Date           string `json:"date"`
	QuantityOnHand int    `json:"quantityOnHand"`
}

// ReportTable representación tabular de un reporte para exportarlo (CSV, XML, PDF).
type ReportTable struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]string
}
