package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// product_id/warehouse_id quedan NULL si se borra el producto o la bodega.
const purchaseOrderSelect = `
	SELECT id, supplier_name, COALESCE(product_id::text, ''), product_name, COALESCE(warehouse_id::text, ''),
	       warehouse_name, quantity, order_date, user_id, status, received_at, received_by
	FROM purchase_orders`

// Create inserta una orden.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, supplier_name, product_id, product_name, warehouse_id, warehouse_name,
			quantity, order_date, user_id, status, received_at, received_by)
		VALUES ($1, $2, NULLIF($3::text, '')::uuid, $4, NULLIF($5::text, '')::uuid, $6, $7, $8, $9, $10, $11, $12)`,
		po.ID, po.SupplierName, po.ProductID, po.ProductName, po.WarehouseID, po.WarehouseName,
		po.Quantity, po.OrderDate, po.UserID, po.Status, po.ReceivedAt, po.ReceivedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, purchaseOrderSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return po, nil
}

// List lista las órdenes por fecha.
func (r *PurchaseOrderRepo) List(ctx context.Context) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, purchaseOrderSelect+` ORDER BY order_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// Update persiste estado y datos de recepción.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, received_at = $3, received_by = $4
		WHERE id = $1`,
		po.ID, po.Status, po.ReceivedAt, po.ReceivedBy,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.SupplierName, &po.ProductID, &po.ProductName, &po.WarehouseID,
		&po.WarehouseName, &po.Quantity, &po.OrderDate, &po.UserID, &po.Status, &po.ReceivedAt, &po.ReceivedBy)
	if err != nil {
		return nil, err
	}
	return &po, nil
}
