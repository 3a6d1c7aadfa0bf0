package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// KeyLocker serializa las operaciones de lectura-modificación-escritura sobre una misma clave.
// El unlock devuelto debe llamarse siempre.
type KeyLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// inventoryLockKey clave del candado por par producto/bodega.
func inventoryLockKey(productID, warehouseID string) string {
	return fmt.Sprintf("lock:inventory:%s:%s", productID, warehouseID)
}

// withPairLock ejecuta fn con el candado del par tomado.
func withPairLock(ctx context.Context, locker KeyLocker, productID, warehouseID string, fn func() error) error {
	unlock, err := locker.Lock(ctx, inventoryLockKey(productID, warehouseID))
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// withPairLocks toma varios candados de par en orden estable (sin duplicados) para evitar interbloqueos.
func withPairLocks(ctx context.Context, locker KeyLocker, pairs [][2]string, fn func() error) error {
	keys := make([]string, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		k := inventoryLockKey(p[0], p[1])
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		unlock, err := locker.Lock(ctx, k)
		if err != nil {
			return err
		}
		defer unlock()
	}
	return fn()
}
