package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, warehouse_id, quantity, reorder_threshold, created_at, updated_at`

// Create inserta el inventario; el par producto/bodega duplicado devuelve ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventory (`+inventoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.ProductID, inv.WarehouseID, inv.Quantity, inv.ReorderThreshold, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: inventario del par producto/bodega", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un inventario por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
}

// GetByProductAndWarehouse obtiene el inventario del par.
func (r *InventoryRepo) GetByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	if !isUUID(productID) || !isUUID(warehouseID) {
		return nil, nil
	}
	return r.getOne(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 AND warehouse_id = $2`,
		productID, warehouseID)
}

// List lista todos los inventarios.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update actualiza producto, bodega, cantidad y umbral.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx, `
		UPDATE inventory SET product_id = $2, warehouse_id = $3, quantity = $4, reorder_threshold = $5, updated_at = $6
		WHERE id = $1`,
		inv.ID, inv.ProductID, inv.WarehouseID, inv.Quantity, inv.ReorderThreshold, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: inventario del par producto/bodega", domain.ErrDuplicate)
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// Delete elimina un inventario (sus alertas se eliminan en cascada).
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	if err := row.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.ReorderThreshold, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
