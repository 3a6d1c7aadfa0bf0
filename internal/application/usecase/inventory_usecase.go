package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

// InventoryUseCase casos de uso de existencias por producto y bodega.
type InventoryUseCase struct {
	repos  repository.Repos
	tx     TxRunner
	locker KeyLocker
	alerts *StockAlertUseCase
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repos repository.Repos, tx TxRunner, locker KeyLocker, alerts *StockAlertUseCase) *InventoryUseCase {
	return &InventoryUseCase{repos: repos, tx: tx, locker: locker, alerts: alerts}
}

// Create registra la existencia de un par producto/bodega y evalúa la alerta de stock bajo.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.InventoryRequest) (*dto.InventoryResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *dto.InventoryResponse
	err := withPairLock(ctx, uc.locker, in.ProductID, in.WarehouseID, func() error {
		return uc.tx.Run(ctx, func(r repository.Repos) error {
			product, warehouse, err := resolvePair(ctx, r, in.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			existing, err := r.Inventory.GetByProductAndWarehouse(ctx, product.ID, warehouse.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w: ya existe inventario para el producto en la bodega", domain.ErrDuplicate)
			}
			threshold := entity.DefaultReorderThreshold
			if in.ReorderThreshold != nil {
				threshold = *in.ReorderThreshold
			}
			now := time.Now()
			inv := &entity.Inventory{
				ID:               uuid.New().String(),
				ProductID:        product.ID,
				WarehouseID:      warehouse.ID,
				Quantity:         *in.Quantity,
				ReorderThreshold: threshold,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := r.Inventory.Create(ctx, inv); err != nil {
				return err
			}
			if _, err := uc.alerts.CreateAlertIfLowStock(ctx, r.Alerts, inv); err != nil {
				return err
			}
			out = toInventoryResponse(inv, product.Name, warehouse.Name)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene un inventario por ID.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryResponse, error) {
	inv, err := uc.repos.Inventory.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: inventario %s", domain.ErrNotFound, id)
	}
	names, err := lookupNames(ctx, uc.repos, inv.ProductID, inv.WarehouseID)
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(inv, names.product, names.warehouse), nil
}

// List lista todos los inventarios.
func (uc *InventoryUseCase) List(ctx context.Context) ([]dto.InventoryResponse, error) {
	list, err := uc.repos.Inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	products, warehouses, err := nameIndex(ctx, uc.repos)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInventoryResponse(inv, products[inv.ProductID], warehouses[inv.WarehouseID]))
	}
	return items, nil
}

// Update reemplaza producto, bodega y cantidad (y el umbral si viene). Si la cantidad cambia
// registra un movimiento ADJUSTMENT por la diferencia.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.InventoryRequest) (*dto.InventoryResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	current, err := uc.repos.Inventory.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: inventario %s", domain.ErrNotFound, id)
	}
	pairs := [][2]string{{current.ProductID, current.WarehouseID}, {in.ProductID, in.WarehouseID}}
	var out *dto.InventoryResponse
	err = withPairLocks(ctx, uc.locker, pairs, func() error {
		return uc.tx.Run(ctx, func(r repository.Repos) error {
			inv, err := r.Inventory.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if inv == nil {
				return fmt.Errorf("%w: inventario %s", domain.ErrNotFound, id)
			}
			// Los candados se tomaron sobre el par leído antes; si cambió, no protegen este registro.
			if inv.ProductID != current.ProductID || inv.WarehouseID != current.WarehouseID {
				return fmt.Errorf("%w: el inventario %s cambió de producto o bodega", domain.ErrConflict, id)
			}
			product, warehouse, err := resolvePair(ctx, r, in.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			other, err := r.Inventory.GetByProductAndWarehouse(ctx, product.ID, warehouse.ID)
			if err != nil {
				return err
			}
			if other != nil && other.ID != inv.ID {
				return fmt.Errorf("%w: ya existe inventario para el producto en la bodega", domain.ErrDuplicate)
			}

			oldQty := inv.Quantity
			inv.ProductID = product.ID
			inv.WarehouseID = warehouse.ID
			inv.Quantity = *in.Quantity
			if in.ReorderThreshold != nil {
				inv.ReorderThreshold = *in.ReorderThreshold
			}
			inv.UpdatedAt = time.Now()
			if err := r.Inventory.Update(ctx, inv); err != nil {
				return err
			}
			if _, err := uc.alerts.CreateAlertIfLowStock(ctx, r.Alerts, inv); err != nil {
				return err
			}
			if diff := inv.Quantity - oldQty; diff != 0 {
				mov := &entity.InventoryMovement{
					ID:          uuid.New().String(),
					ProductID:   product.ID,
					WarehouseID: warehouse.ID,
					Type:        entity.MovementTypeAdjustment,
					Quantity:    diff,
					UnitCost:    product.Price,
					Date:        inv.UpdatedAt,
					Reference:   entity.ManualAdjustmentReference,
				}
				if err := r.Movements.Create(ctx, mov); err != nil {
					return err
				}
			}
			out = toInventoryResponse(inv, product.Name, warehouse.Name)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un inventario por ID.
func (uc *InventoryUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.repos.Inventory.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return fmt.Errorf("%w: inventario %s", domain.ErrNotFound, id)
	}
	return withPairLock(ctx, uc.locker, inv.ProductID, inv.WarehouseID, func() error {
		return uc.repos.Inventory.Delete(ctx, id)
	})
}

// resolvePair obtiene producto y bodega por ID; ErrNotFound si alguno no existe.
func resolvePair(ctx context.Context, r repository.Repos, productID, warehouseID string) (*entity.Product, *entity.Warehouse, error) {
	product, err := r.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	warehouse, err := r.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	if warehouse == nil {
		return nil, nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	return product, warehouse, nil
}

// nameIndex carga los nombres de todos los productos y bodegas indexados por ID.
func nameIndex(ctx context.Context, repos repository.Repos) (map[string]string, map[string]string, error) {
	products, err := repos.Products.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	warehouses, err := repos.Warehouses.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	pn := make(map[string]string, len(products))
	for _, p := range products {
		pn[p.ID] = p.Name
	}
	wn := make(map[string]string, len(warehouses))
	for _, w := range warehouses {
		wn[w.ID] = w.Name
	}
	return pn, wn, nil
}

func toInventoryResponse(inv *entity.Inventory, productName, warehouseName string) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:               inv.ID,
		ProductID:        inv.ProductID,
		ProductName:      productName,
		WarehouseID:      inv.WarehouseID,
		WarehouseName:    warehouseName,
		Quantity:         inv.Quantity,
		ReorderThreshold: inv.ReorderThreshold,
		CreatedAt:        inv.CreatedAt,
		UpdatedAt:        inv.UpdatedAt,
	}
}
