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
	"github.com/jhoicas/inventory-ims/pkg/logger"
)

// StockAlertUseCase alertas de stock bajo: creación deduplicada, consulta y resolución.
type StockAlertUseCase struct {
	repos repository.Repos
	log   *logger.Logger
}

// NewStockAlertUseCase construye el caso de uso con repositorios atados al pool.
func NewStockAlertUseCase(repos repository.Repos, log *logger.Logger) *StockAlertUseCase {
	return &StockAlertUseCase{repos: repos, log: log}
}

// CreateAlertIfLowStock crea una alerta si quantity < threshold y no hay otra sin resolver para el
// inventario. Recibe el repositorio de la transacción en curso. Devuelve nil si no creó nada.
func (uc *StockAlertUseCase) CreateAlertIfLowStock(ctx context.Context, alerts repository.StockAlertRepository, inv *entity.Inventory) (*entity.StockAlert, error) {
	if !inv.IsLowStock() {
		return nil, nil
	}
	exists, err := alerts.ExistsUnresolved(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}
	alert := &entity.StockAlert{
		ID:          uuid.New().String(),
		InventoryID: inv.ID,
		Quantity:    inv.Quantity,
		Threshold:   inv.ReorderThreshold,
		CreatedAt:   time.Now(),
	}
	created, err := alerts.Create(ctx, alert)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	uc.log.Info().
		Str("inventory_id", inv.ID).
		Int("quantity", inv.Quantity).
		Int("threshold", inv.ReorderThreshold).
		Msg("alerta de stock bajo creada")
	return alert, nil
}

// ListActive lista las alertas sin resolver con nombres de producto y bodega.
func (uc *StockAlertUseCase) ListActive(ctx context.Context) ([]dto.StockAlertResponse, error) {
	list, err := uc.repos.Alerts.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockAlertResponse, 0, len(list))
	for _, a := range list {
		out, err := uc.toResponse(ctx, a)
		if err != nil {
			return nil, err
		}
		items = append(items, *out)
	}
	return items, nil
}

// Resolve marca la alerta como resuelta. Resolver una alerta ya resuelta no la modifica.
func (uc *StockAlertUseCase) Resolve(ctx context.Context, id string) (*dto.StockAlertResponse, error) {
	alert, err := uc.repos.Alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, fmt.Errorf("%w: alerta %s", domain.ErrNotFound, id)
	}
	if !alert.Resolved {
		now := time.Now()
		alert.Resolved = true
		alert.ResolvedAt = &now
		if err := uc.repos.Alerts.Update(ctx, alert); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(ctx, alert)
}

func (uc *StockAlertUseCase) toResponse(ctx context.Context, a *entity.StockAlert) (*dto.StockAlertResponse, error) {
	out := &dto.StockAlertResponse{
		ID:          a.ID,
		InventoryID: a.InventoryID,
		Quantity:    a.Quantity,
		Threshold:   a.Threshold,
		CreatedAt:   a.CreatedAt,
		Resolved:    a.Resolved,
		ResolvedAt:  a.ResolvedAt,
	}
	inv, err := uc.repos.Inventory.GetByID(ctx, a.InventoryID)
	if err != nil || inv == nil {
		return out, err
	}
	names, err := lookupNames(ctx, uc.repos, inv.ProductID, inv.WarehouseID)
	if err != nil {
		return nil, err
	}
	out.ProductName, out.WarehouseName = names.product, names.warehouse
	return out, nil
}
