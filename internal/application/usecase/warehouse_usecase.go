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
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega. El nombre es único sin distinguir mayúsculas.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.ensureNameFree(ctx, in.Name, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista todas las bodegas.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

// Update actualiza nombre y ubicación.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	if err := uc.ensureNameFree(ctx, in.Name, id); err != nil {
		return nil, err
	}
	warehouse.Name = in.Name
	warehouse.Location = in.Location
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Delete elimina una bodega por ID.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

// ensureNameFree recorre todas las bodegas comparando sin distinguir mayúsculas; exceptID se omite.
func (uc *WarehouseUseCase) ensureNameFree(ctx context.Context, name, exceptID string) error {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, w := range list {
		if w.ID != exceptID && strings.EqualFold(w.Name, name) {
			return fmt.Errorf("%w: ya existe una bodega con nombre %q", domain.ErrDuplicate, name)
		}
	}
	return nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
