package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var (
	_ repository.InventoryRepository         = (*InventoryRepo)(nil)
	_ repository.InventoryMovementRepository = (*MovementRepo)(nil)
	_ repository.PurchaseOrderRepository     = (*PurchaseOrderRepo)(nil)
	_ repository.StockAlertRepository        = (*StockAlertRepo)(nil)
)

// InventoryRepo existencias en memoria; un solo registro por par producto/bodega.
type InventoryRepo struct{ v view }

// Create inserta el inventario; falla con ErrDuplicate si el par ya tiene registro.
func (r *InventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	return r.v.write(func(s *state) error {
		if err := inventoryConflict(s, inv); err != nil {
			return err
		}
		s.inventory[inv.ID] = *inv
		return nil
	})
}

// GetByID devuelve el inventario o nil si no existe.
func (r *InventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	var out *entity.Inventory
	r.v.read(func(s *state) {
		if inv, ok := s.inventory[id]; ok {
			out = &inv
		}
	})
	return out, nil
}

// GetByProductAndWarehouse devuelve el inventario del par o nil.
func (r *InventoryRepo) GetByProductAndWarehouse(_ context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	var out *entity.Inventory
	r.v.read(func(s *state) {
		for _, inv := range s.inventory {
			if inv.ProductID == productID && inv.WarehouseID == warehouseID {
				inv := inv
				out = &inv
				return
			}
		}
	})
	return out, nil
}

// List devuelve los inventarios por fecha de creación.
func (r *InventoryRepo) List(_ context.Context) ([]*entity.Inventory, error) {
	var list []*entity.Inventory
	r.v.read(func(s *state) {
		for _, inv := range s.inventory {
			inv := inv
			list = append(list, &inv)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Update reemplaza el inventario si existe.
func (r *InventoryRepo) Update(_ context.Context, inv *entity.Inventory) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.inventory[inv.ID]; !ok {
			return nil
		}
		if err := inventoryConflict(s, inv); err != nil {
			return err
		}
		s.inventory[inv.ID] = *inv
		return nil
	})
}

// Delete elimina el inventario y sus alertas.
func (r *InventoryRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(s *state) error {
		deleteInventory(s, id)
		return nil
	})
}

func inventoryConflict(s *state, inv *entity.Inventory) error {
	if inv.Quantity < 0 {
		return fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	for _, other := range s.inventory {
		if other.ID != inv.ID && other.ProductID == inv.ProductID && other.WarehouseID == inv.WarehouseID {
			return fmt.Errorf("%w: inventario del par producto/bodega", domain.ErrDuplicate)
		}
	}
	return nil
}

// deleteInventory borra el inventario y sus alertas.
func deleteInventory(s *state, id string) {
	delete(s.inventory, id)
	for alertID, a := range s.alerts {
		if a.InventoryID == id {
			delete(s.alerts, alertID)
		}
	}
}

// MovementRepo log de movimientos en memoria (solo inserción).
type MovementRepo struct{ v view }

// Create agrega el movimiento al log.
func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	return r.v.write(func(s *state) error {
		s.movements = append(s.movements, *m)
		return nil
	})
}

// List devuelve los movimientos por fecha ascendente; a igual fecha, en orden de inserción.
func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	r.v.read(func(s *state) {
		for _, m := range s.movements {
			if filter.ProductID != "" && m.ProductID != filter.ProductID {
				continue
			}
			if filter.WarehouseID != "" && m.WarehouseID != filter.WarehouseID {
				continue
			}
			m := m
			list = append(list, &m)
		}
	})
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct{ v view }

// Create inserta la orden de compra.
func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.v.write(func(s *state) error {
		s.purchaseOrders[po.ID] = *po
		return nil
	})
}

// GetByID devuelve la orden o nil si no existe.
func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	r.v.read(func(s *state) {
		if po, ok := s.purchaseOrders[id]; ok {
			out = &po
		}
	})
	return out, nil
}

// List devuelve las órdenes por fecha de orden.
func (r *PurchaseOrderRepo) List(_ context.Context) ([]*entity.PurchaseOrder, error) {
	var list []*entity.PurchaseOrder
	r.v.read(func(s *state) {
		for _, po := range s.purchaseOrders {
			po := po
			list = append(list, &po)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.Before(list[j].OrderDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Update persiste estado y datos de recepción.
func (r *PurchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	return r.v.write(func(s *state) error {
		cur, ok := s.purchaseOrders[po.ID]
		if !ok {
			return nil
		}
		cur.Status = po.Status
		cur.ReceivedAt = po.ReceivedAt
		cur.ReceivedBy = po.ReceivedBy
		s.purchaseOrders[po.ID] = cur
		return nil
	})
}

// StockAlertRepo alertas en memoria; una sola alerta abierta por inventario.
type StockAlertRepo struct{ v view }

// Create inserta la alerta; devuelve false si el inventario ya tiene una abierta.
func (r *StockAlertRepo) Create(_ context.Context, a *entity.StockAlert) (bool, error) {
	created := false
	err := r.v.write(func(s *state) error {
		if _, ok := s.inventory[a.InventoryID]; !ok {
			return fmt.Errorf("%w: inventario %s", domain.ErrNotFound, a.InventoryID)
		}
		if !a.Resolved && hasOpenAlert(s, a.InventoryID) {
			return nil
		}
		s.alerts[a.ID] = *a
		created = true
		return nil
	})
	return created, err
}

// GetByID devuelve la alerta o nil si no existe.
func (r *StockAlertRepo) GetByID(_ context.Context, id string) (*entity.StockAlert, error) {
	var out *entity.StockAlert
	r.v.read(func(s *state) {
		if a, ok := s.alerts[id]; ok {
			out = &a
		}
	})
	return out, nil
}

// ExistsUnresolved indica si el inventario tiene una alerta abierta.
func (r *StockAlertRepo) ExistsUnresolved(_ context.Context, inventoryID string) (bool, error) {
	var exists bool
	r.v.read(func(s *state) { exists = hasOpenAlert(s, inventoryID) })
	return exists, nil
}

// ListUnresolved devuelve las alertas abiertas por fecha de creación.
func (r *StockAlertRepo) ListUnresolved(_ context.Context) ([]*entity.StockAlert, error) {
	var list []*entity.StockAlert
	r.v.read(func(s *state) {
		for _, a := range s.alerts {
			if !a.Resolved {
				a := a
				list = append(list, &a)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Update persiste el estado de resolución.
func (r *StockAlertRepo) Update(_ context.Context, a *entity.StockAlert) error {
	return r.v.write(func(s *state) error {
		cur, ok := s.alerts[a.ID]
		if !ok {
			return nil
		}
		cur.Resolved = a.Resolved
		cur.ResolvedAt = a.ResolvedAt
		s.alerts[a.ID] = cur
		return nil
	})
}

func hasOpenAlert(s *state, inventoryID string) bool {
	for _, a := range s.alerts {
		if a.InventoryID == inventoryID && !a.Resolved {
			return true
		}
	}
	return false
}
