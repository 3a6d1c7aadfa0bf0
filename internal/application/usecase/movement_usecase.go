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

// MovementUseCase registra entradas y salidas de mercancía y consulta el log de movimientos.
// Cada entrada/salida actualiza la existencia del par en la misma transacción.
type MovementUseCase struct {
	repos  repository.Repos
	tx     TxRunner
	locker KeyLocker
	alerts *StockAlertUseCase
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repos repository.Repos, tx TxRunner, locker KeyLocker, alerts *StockAlertUseCase) *MovementUseCase {
	return &MovementUseCase{repos: repos, tx: tx, locker: locker, alerts: alerts}
}

// Record registra un movimiento INBOUND u OUTBOUND. Las salidas se guardan con cantidad negativa
// y fallan con ErrInsufficientStock si dejarían la existencia por debajo de cero.
func (uc *MovementUseCase) Record(ctx context.Context, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out *dto.MovementResponse
	err := withPairLock(ctx, uc.locker, in.ProductID, in.WarehouseID, func() error {
		return uc.tx.Run(ctx, func(r repository.Repos) error {
			product, warehouse, err := resolvePair(ctx, r, in.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			inv, err := r.Inventory.GetByProductAndWarehouse(ctx, product.ID, warehouse.ID)
			if err != nil {
				return err
			}

			delta := in.Quantity
			if in.Type == entity.MovementTypeOutbound {
				delta = -in.Quantity
				if inv == nil {
					return fmt.Errorf("%w: no hay inventario del producto en la bodega", domain.ErrNotFound)
				}
				if inv.Quantity+delta < 0 {
					return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, inv.Quantity, in.Quantity)
				}
			}

			now := time.Now()
			if inv == nil {
				inv = &entity.Inventory{
					ID:               uuid.New().String(),
					ProductID:        product.ID,
					WarehouseID:      warehouse.ID,
					Quantity:         delta,
					ReorderThreshold: entity.DefaultReorderThreshold,
					CreatedAt:        now,
					UpdatedAt:        now,
				}
				if err := r.Inventory.Create(ctx, inv); err != nil {
					return err
				}
			} else {
				inv.Quantity += delta
				inv.UpdatedAt = now
				if err := r.Inventory.Update(ctx, inv); err != nil {
					return err
				}
			}

			unitCost := product.Price
			if in.UnitCost != nil {
				unitCost = *in.UnitCost
			}
			mov := &entity.InventoryMovement{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				WarehouseID: warehouse.ID,
				Type:        in.Type,
				Quantity:    delta,
				UnitCost:    unitCost,
				Date:        now,
				Reference:   in.Reference,
			}
			if err := r.Movements.Create(ctx, mov); err != nil {
				return err
			}
			if _, err := uc.alerts.CreateAlertIfLowStock(ctx, r.Alerts, inv); err != nil {
				return err
			}
			out = toMovementResponse(mov)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista movimientos filtrando opcionalmente por producto y bodega.
func (uc *MovementUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	list, err := uc.repos.Movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		Date:        m.Date,
		Reference:   m.Reference,
	}
}
