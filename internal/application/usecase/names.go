package usecase

import (
	"context"

	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

type pairNames struct {
	product   string
	warehouse string
}

// lookupNames resuelve los nombres de producto y bodega; vacíos si ya no existen.
func lookupNames(ctx context.Context, repos repository.Repos, productID, warehouseID string) (pairNames, error) {
	var n pairNames
	p, err := repos.Products.GetByID(ctx, productID)
	if err != nil {
		return n, err
	}
	if p != nil {
		n.product = p.Name
	}
	w, err := repos.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return n, err
	}
	if w != nil {
		n.warehouse = w.Name
	}
	return n, nil
}
