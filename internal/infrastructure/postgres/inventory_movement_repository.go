package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación del log de movimientos sobre PostgreSQL.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (id, product_id, warehouse_id, movement_type, quantity, unit_cost, movement_date, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.ProductID, m.WarehouseID, m.Type, m.Quantity, m.UnitCost, m.Date, m.Reference,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List lista movimientos por fecha ascendente, filtrando por producto y/o bodega si se indican.
func (r *InventoryMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	if (filter.ProductID != "" && !isUUID(filter.ProductID)) || (filter.WarehouseID != "" && !isUUID(filter.WarehouseID)) {
		return nil, nil
	}
	var (
		where []string
		args  []any
	)
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		where = append(where, fmt.Sprintf("warehouse_id = $%d", len(args)))
	}
	query := `SELECT id, product_id, warehouse_id, movement_type, quantity, unit_cost, movement_date, reference
		FROM inventory_movements`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY movement_date, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity, &m.UnitCost, &m.Date, &m.Reference); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
