package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, name, location, created_at, updated_at`

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO warehouses (`+warehouseColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		w.ID, w.Name, w.Location, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: nombre de bodega", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id)
}

// GetByName obtiene una bodega por nombre exacto.
func (r *WarehouseRepo) GetByName(ctx context.Context, name string) (*entity.Warehouse, error) {
	return r.getOne(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE name = $1`, name)
}

// List lista todas las bodegas.
func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `SELECT `+warehouseColumns+` FROM warehouses ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Update actualiza nombre y ubicación.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx,
		`UPDATE warehouses SET name = $2, location = $3, updated_at = $4 WHERE id = $1`,
		w.ID, w.Name, w.Location, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: nombre de bodega", domain.ErrDuplicate)
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) getOne(ctx context.Context, query string, arg any) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	if err := row.Scan(&w.ID, &w.Name, &w.Location, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
