package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo implementación del puerto StockAlertRepository sobre PostgreSQL.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador.
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

const stockAlertColumns = `id, inventory_id, quantity, threshold, created_at, resolved, resolved_at`

// Create inserta la alerta. El índice único parcial uq_stock_alerts_open descarta una segunda
// alerta abierta para el mismo inventario; en ese caso devuelve false.
func (r *StockAlertRepo) Create(ctx context.Context, a *entity.StockAlert) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO stock_alerts (`+stockAlertColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (inventory_id) WHERE NOT resolved DO NOTHING`,
		a.ID, a.InventoryID, a.Quantity, a.Threshold, a.CreatedAt, a.Resolved, a.ResolvedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert stock alert: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByID obtiene una alerta por ID.
func (r *StockAlertRepo) GetByID(ctx context.Context, id string) (*entity.StockAlert, error) {
	if !isUUID(id) {
		return nil, nil
	}
	a, err := scanStockAlert(r.q.QueryRow(ctx, `SELECT `+stockAlertColumns+` FROM stock_alerts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock alert: %w", err)
	}
	return a, nil
}

// ExistsUnresolved indica si el inventario tiene una alerta abierta.
func (r *StockAlertRepo) ExistsUnresolved(ctx context.Context, inventoryID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stock_alerts WHERE inventory_id = $1 AND NOT resolved)`,
		inventoryID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stock alert: %w", err)
	}
	return exists, nil
}

// ListUnresolved lista las alertas abiertas por fecha de creación.
func (r *StockAlertRepo) ListUnresolved(ctx context.Context) ([]*entity.StockAlert, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockAlertColumns+` FROM stock_alerts WHERE NOT resolved ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		a, err := scanStockAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update persiste el estado de resolución.
func (r *StockAlertRepo) Update(ctx context.Context, a *entity.StockAlert) error {
	_, err := r.q.Exec(ctx,
		`UPDATE stock_alerts SET resolved = $2, resolved_at = $3 WHERE id = $1`,
		a.ID, a.Resolved, a.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock alert: %w", err)
	}
	return nil
}

func scanStockAlert(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	if err := row.Scan(&a.ID, &a.InventoryID, &a.Quantity, &a.Threshold, &a.CreatedAt, &a.Resolved, &a.ResolvedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
