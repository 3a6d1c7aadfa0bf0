package repository

// Repos agrupa los repositorios atados a una misma transacción (o al pool).
type Repos struct {
	Products       ProductRepository
	Warehouses     WarehouseRepository
	Inventory      InventoryRepository
	Movements      InventoryMovementRepository
	PurchaseOrders PurchaseOrderRepository
	Alerts         StockAlertRepository
}
