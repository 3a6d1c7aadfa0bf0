package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
	"github.com/jhoicas/inventory-ims/pkg/logger"
)

// PurchaseOrderUseCase órdenes de compra: creación, consulta, recepción y cancelación.
type PurchaseOrderUseCase struct {
	repos  repository.Repos
	tx     TxRunner
	locker KeyLocker
	alerts *StockAlertUseCase
	log    *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(repos repository.Repos, tx TxRunner, locker KeyLocker, alerts *StockAlertUseCase, log *logger.Logger) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{repos: repos, tx: tx, locker: locker, alerts: alerts, log: log}
}

// Create registra una orden PENDING. Producto y bodega se resuelven ahora (por ID o nombre exacto);
// si alguno no existe la orden no se crea.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, caller Caller, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	product, err := uc.findProduct(ctx, in.ProductID, strings.TrimSpace(in.ProductName))
	if err != nil {
		return nil, err
	}
	warehouse, err := uc.findWarehouse(ctx, in.WarehouseID, strings.TrimSpace(in.WarehouseName))
	if err != nil {
		return nil, err
	}
	userID := in.UserID
	if userID == "" {
		userID = caller.UserID
	}
	po := &entity.PurchaseOrder{
		ID:            uuid.New().String(),
		SupplierName:  in.SupplierName,
		ProductID:     product.ID,
		ProductName:   product.Name,
		WarehouseID:   warehouse.ID,
		WarehouseName: warehouse.Name,
		Quantity:      in.Quantity,
		OrderDate:     time.Now(),
		UserID:        userID,
		Status:        entity.PurchaseOrderPending,
	}
	if err := uc.repos.PurchaseOrders.Create(ctx, po); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// GetByID obtiene una orden por ID.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
	}
	return toPurchaseOrderResponse(po), nil
}

// List lista todas las órdenes.
func (uc *PurchaseOrderUseCase) List(ctx context.Context) ([]dto.PurchaseOrderResponse, error) {
	list, err := uc.repos.PurchaseOrders.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *toPurchaseOrderResponse(po))
	}
	return items, nil
}

// Fulfill recibe la orden: suma la cantidad al inventario del par (creándolo si no existe),
// evalúa la alerta de stock bajo y marca la orden RECEIVED. Todo en una transacción.
func (uc *PurchaseOrderUseCase) Fulfill(ctx context.Context, id, receivedBy string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
	}
	var out *dto.PurchaseOrderResponse
	err = withPairLock(ctx, uc.locker, po.ProductID, po.WarehouseID, func() error {
		return uc.tx.Run(ctx, func(r repository.Repos) error {
			po, err := r.PurchaseOrders.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if po == nil {
				return fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
			}
			switch {
			case po.IsReceived():
				return domain.ErrAlreadyFulfilled
			case po.IsCancelled():
				return domain.ErrOrderCancelled
			}
			product, warehouse, err := resolvePair(ctx, r, po.ProductID, po.WarehouseID)
			if err != nil {
				return err
			}

			now := time.Now()
			inv, err := r.Inventory.GetByProductAndWarehouse(ctx, product.ID, warehouse.ID)
			if err != nil {
				return err
			}
			if inv == nil {
				inv = &entity.Inventory{
					ID:               uuid.New().String(),
					ProductID:        product.ID,
					WarehouseID:      warehouse.ID,
					Quantity:         po.Quantity,
					ReorderThreshold: entity.DefaultReorderThreshold,
					CreatedAt:        now,
					UpdatedAt:        now,
				}
				err = r.Inventory.Create(ctx, inv)
			} else {
				inv.Quantity += po.Quantity
				inv.UpdatedAt = now
				err = r.Inventory.Update(ctx, inv)
			}
			if err != nil {
				return err
			}
			if _, err := uc.alerts.CreateAlertIfLowStock(ctx, r.Alerts, inv); err != nil {
				return err
			}

			po.Status = entity.PurchaseOrderReceived
			po.ReceivedAt = &now
			po.ReceivedBy = receivedBy
			if err := r.PurchaseOrders.Update(ctx, po); err != nil {
				return err
			}
			out = toPurchaseOrderResponse(po)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("purchase_order_id", id).
		Str("received_by", receivedBy).
		Int("quantity", out.Quantity).
		Msg("orden de compra recibida")
	return out, nil
}

// Cancel pasa una orden PENDING a CANCELLED. Cancelar una orden ya cancelada no hace nada.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.repos.PurchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
	}
	var out *dto.PurchaseOrderResponse
	err = withPairLock(ctx, uc.locker, po.ProductID, po.WarehouseID, func() error {
		return uc.tx.Run(ctx, func(r repository.Repos) error {
			po, err := r.PurchaseOrders.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if po == nil {
				return fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
			}
			if po.IsReceived() {
				return domain.ErrAlreadyFulfilled
			}
			if !po.IsCancelled() {
				po.Status = entity.PurchaseOrderCancelled
				if err := r.PurchaseOrders.Update(ctx, po); err != nil {
					return err
				}
			}
			out = toPurchaseOrderResponse(po)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *PurchaseOrderUseCase) findProduct(ctx context.Context, id, name string) (*entity.Product, error) {
	var (
		p   *entity.Product
		err error
	)
	if id != "" {
		p, err = uc.repos.Products.GetByID(ctx, id)
	} else {
		p, err = uc.repos.Products.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s%s", domain.ErrNotFound, id, name)
	}
	return p, nil
}

func (uc *PurchaseOrderUseCase) findWarehouse(ctx context.Context, id, name string) (*entity.Warehouse, error) {
	var (
		w   *entity.Warehouse
		err error
	)
	if id != "" {
		w, err = uc.repos.Warehouses.GetByID(ctx, id)
	} else {
		w, err = uc.repos.Warehouses.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: bodega %s%s", domain.ErrNotFound, id, name)
	}
	return w, nil
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:            po.ID,
		SupplierName:  po.SupplierName,
		ProductID:     po.ProductID,
		ProductName:   po.ProductName,
		WarehouseID:   po.WarehouseID,
		WarehouseName: po.WarehouseName,
		Quantity:      po.Quantity,
		OrderDate:     po.OrderDate,
		UserID:        po.UserID,
		Status:        po.Status,
		ReceivedAt:    po.ReceivedAt,
		ReceivedBy:    po.ReceivedBy,
	}
}
