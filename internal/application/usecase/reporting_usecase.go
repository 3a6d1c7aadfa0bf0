package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/reporting"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

// ReportingUseCase reportes de rotación, valorización y tendencia sobre el producto cartesiano
// productos × bodegas (filtrable por producto y/o bodega).
type ReportingUseCase struct {
	repos repository.Repos
}

// NewReportingUseCase construye el caso de uso.
func NewReportingUseCase(repos repository.Repos) *ReportingUseCase {
	return &ReportingUseCase{repos: repos}
}

type reportPair struct {
	product   *entity.Product
	warehouse *entity.Warehouse
}

func pairKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

// InventoryTurnover calcula por par la rotación del periodo start..end (días incluidos).
func (uc *ReportingUseCase) InventoryTurnover(ctx context.Context, caller Caller, filter dto.ReportFilter, start, end time.Time) ([]dto.InventoryTurnoverReport, error) {
	if err := authorizeReport(caller); err != nil {
		return nil, err
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	pairs, err := uc.pairs(ctx, filter)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementsByPair(ctx)
	if err != nil {
		return nil, err
	}

	w := reporting.NewWindow(start, end)
	rows := make([]dto.InventoryTurnoverReport, 0, len(pairs))
	for _, p := range pairs {
		movs := movements[pairKey(p.product.ID, p.warehouse.ID)]

		unitCost := reporting.FirstOutboundUnitCost(movs, w)
		if unitCost.IsZero() {
			unitCost = p.product.Price
		}
		cogs := reporting.CostOfGoodsSold(movs, w)
		startQty := reporting.OnHandAt(movs, w.Start)
		endQty := reporting.OnHandBefore(movs, w.End)
		avg := reporting.AverageInventory(startQty, endQty)

		rows = append(rows, dto.InventoryTurnoverReport{
			ProductID:        p.product.ID,
			ProductName:      p.product.Name,
			WarehouseID:      p.warehouse.ID,
			WarehouseName:    p.warehouse.Name,
			PeriodStart:      start.Format(reporting.DateLayout),
			PeriodEnd:        end.Format(reporting.DateLayout),
			TurnoverRatio:    reporting.TurnoverRatio(cogs, avg),
			CostOfGoodsSold:  cogs,
			AverageInventory: avg,
			UnitCost:         unitCost,
		})
	}
	return rows, nil
}

// StockValuation valoriza la existencia actual a precio de producto. Los pares sin inventario se omiten.
func (uc *ReportingUseCase) StockValuation(ctx context.Context, caller Caller, filter dto.ReportFilter) ([]dto.StockValuationReport, error) {
	if err := authorizeReport(caller); err != nil {
		return nil, err
	}
	pairs, err := uc.pairs(ctx, filter)
	if err != nil {
		return nil, err
	}
	inventory, err := uc.inventoryByPair(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StockValuationReport, 0)
	for _, p := range pairs {
		inv, ok := inventory[pairKey(p.product.ID, p.warehouse.ID)]
		if !ok {
			continue
		}
		rows = append(rows, dto.StockValuationReport{
			ProductID:      p.product.ID,
			ProductName:    p.product.Name,
			WarehouseID:    p.warehouse.ID,
			WarehouseName:  p.warehouse.Name,
			QuantityOnHand: inv.Quantity,
			UnitCost:       p.product.Price,
			TotalValue:     reporting.StockValue(inv.Quantity, p.product.Price),
		})
	}
	return rows, nil
}

// InventoryTrends reconstruye día a día la existencia de cada par a partir de los movimientos.
// Si la reconstrucción da cero se usa la existencia actual del inventario.
func (uc *ReportingUseCase) InventoryTrends(ctx context.Context, caller Caller, filter dto.ReportFilter, start, end time.Time) ([]dto.InventoryTrendReport, error) {
	if err := authorizeReport(caller); err != nil {
		return nil, err
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	pairs, err := uc.pairs(ctx, filter)
	if err != nil {
		return nil, err
	}
	inventory, err := uc.inventoryByPair(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementsByPair(ctx)
	if err != nil {
		return nil, err
	}

	days := reporting.Days(start, end)
	rows := make([]dto.InventoryTrendReport, 0, len(pairs)*len(days))
	for _, p := range pairs {
		key := pairKey(p.product.ID, p.warehouse.ID)
		initialQty := 0
		if inv, ok := inventory[key]; ok {
			initialQty = inv.Quantity
		}
		movs := movements[key]
		for _, d := range days {
			qty := reporting.OnHandAt(movs, d)
			if qty == 0 {
				qty = initialQty
			}
			rows = append(rows, dto.InventoryTrendReport{
				ProductID:      p.product.ID,
				ProductName:    p.product.Name,
				WarehouseID:    p.warehouse.ID,
				WarehouseName:  p.warehouse.Name,
				Date:           d.Format(reporting.DateLayout),
				QuantityOnHand: qty,
			})
		}
	}
	return rows, nil
}

func authorizeReport(caller Caller) error {
	if !caller.HasRole(ReportingRoles...) {
		return fmt.Errorf("%w: rol %q sin acceso a reportes", domain.ErrForbidden, caller.Role)
	}
	return nil
}

func validatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startDate y endDate son requeridos", domain.ErrInvalidInput)
	}
	if start.After(end) {
		return fmt.Errorf("%w: startDate posterior a endDate", domain.ErrInvalidInput)
	}
	return nil
}

// pairs arma el producto cartesiano filtrado, productos como ciclo externo, en orden de almacenamiento.
func (uc *ReportingUseCase) pairs(ctx context.Context, filter dto.ReportFilter) ([]reportPair, error) {
	products, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.repos.Warehouses.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []reportPair
	for _, p := range products {
		if filter.ProductID != "" && p.ID != filter.ProductID {
			continue
		}
		for _, w := range warehouses {
			if filter.WarehouseID != "" && w.ID != filter.WarehouseID {
				continue
			}
			out = append(out, reportPair{product: p, warehouse: w})
		}
	}
	return out, nil
}

// movementsByPair recorre el log completo una vez y lo agrupa por par conservando el orden.
func (uc *ReportingUseCase) movementsByPair(ctx context.Context) (map[string][]*entity.InventoryMovement, error) {
	list, err := uc.repos.Movements.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	out := make(map[string][]*entity.InventoryMovement)
	for _, m := range list {
		k := pairKey(m.ProductID, m.WarehouseID)
		out[k] = append(out[k], m)
	}
	return out, nil
}

func (uc *ReportingUseCase) inventoryByPair(ctx context.Context) (map[string]*entity.Inventory, error) {
	list, err := uc.repos.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Inventory, len(list))
	for _, inv := range list {
		out[pairKey(inv.ProductID, inv.WarehouseID)] = inv
	}
	return out, nil
}
