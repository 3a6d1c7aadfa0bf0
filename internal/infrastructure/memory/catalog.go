package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
)

// ProductRepo productos en memoria; nombre y SKU son únicos.
type ProductRepo struct{ v view }

// Create inserta el producto; falla con ErrDuplicate si el nombre o el SKU ya existen.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(s *state) error {
		if err := productConflict(s, p); err != nil {
			return err
		}
		s.products[p.ID] = *p
		return nil
	})
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(s *state) {
		if p, ok := s.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetByName busca por nombre exacto.
func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	return r.find(func(p entity.Product) bool { return p.Name == name }), nil
}

// GetBySKU busca por SKU exacto.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return r.find(func(p entity.Product) bool { return p.SKU == sku }), nil
}

func (r *ProductRepo) find(match func(entity.Product) bool) *entity.Product {
	var out *entity.Product
	r.v.read(func(s *state) {
		for _, p := range s.products {
			if match(p) {
				p := p
				out = &p
				return
			}
		}
	})
	return out
}

// List devuelve los productos por fecha de creación.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	r.v.read(func(s *state) {
		for _, p := range s.products {
			p := p
			list = append(list, &p)
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

// Update reemplaza el producto si existe, respetando la unicidad.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.products[p.ID]; !ok {
			return nil
		}
		if err := productConflict(s, p); err != nil {
			return err
		}
		s.products[p.ID] = *p
		return nil
	})
}

// Delete elimina el producto con sus inventarios y alertas; las órdenes de compra pierden la referencia.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(s *state) error {
		delete(s.products, id)
		for invID, inv := range s.inventory {
			if inv.ProductID == id {
				deleteInventory(s, invID)
			}
		}
		for poID, po := range s.purchaseOrders {
			if po.ProductID == id {
				po.ProductID = ""
				s.purchaseOrders[poID] = po
			}
		}
		return nil
	})
}

func productConflict(s *state, p *entity.Product) error {
	for _, other := range s.products {
		if other.ID == p.ID {
			continue
		}
		if other.Name == p.Name {
			return fmt.Errorf("%w: producto con nombre %q", domain.ErrDuplicate, p.Name)
		}
		if other.SKU == p.SKU {
			return fmt.Errorf("%w: producto con SKU %q", domain.ErrDuplicate, p.SKU)
		}
	}
	return nil
}

// WarehouseRepo bodegas en memoria; el nombre es único sin distinguir mayúsculas.
type WarehouseRepo struct{ v view }

// Create inserta la bodega; falla con ErrDuplicate si el nombre ya existe.
func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.v.write(func(s *state) error {
		if err := warehouseConflict(s, w); err != nil {
			return err
		}
		s.warehouses[w.ID] = *w
		return nil
	})
}

// GetByID devuelve la bodega o nil si no existe.
func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.v.read(func(s *state) {
		if w, ok := s.warehouses[id]; ok {
			out = &w
		}
	})
	return out, nil
}

// GetByName busca por nombre exacto.
func (r *WarehouseRepo) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.v.read(func(s *state) {
		for _, w := range s.warehouses {
			if w.Name == name {
				w := w
				out = &w
				return
			}
		}
	})
	return out, nil
}

// List devuelve las bodegas por fecha de creación.
func (r *WarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	r.v.read(func(s *state) {
		for _, w := range s.warehouses {
			w := w
			list = append(list, &w)
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

// Update reemplaza la bodega si existe, respetando la unicidad.
func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.warehouses[w.ID]; !ok {
			return nil
		}
		if err := warehouseConflict(s, w); err != nil {
			return err
		}
		s.warehouses[w.ID] = *w
		return nil
	})
}

// Delete elimina la bodega con sus inventarios y alertas; las órdenes de compra pierden la referencia.
func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(s *state) error {
		delete(s.warehouses, id)
		for invID, inv := range s.inventory {
			if inv.WarehouseID == id {
				deleteInventory(s, invID)
			}
		}
		for poID, po := range s.purchaseOrders {
			if po.WarehouseID == id {
				po.WarehouseID = ""
				s.purchaseOrders[poID] = po
			}
		}
		return nil
	})
}

func warehouseConflict(s *state, w *entity.Warehouse) error {
	for _, other := range s.warehouses {
		if other.ID != w.ID && strings.EqualFold(other.Name, w.Name) {
			return fmt.Errorf("%w: bodega con nombre %q", domain.ErrDuplicate, w.Name)
		}
	}
	return nil
}
