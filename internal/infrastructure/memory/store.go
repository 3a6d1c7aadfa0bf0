// Package memory implementa los puertos de persistencia en memoria. Se usa con DB_DRIVER=memory
// y en las pruebas de casos de uso y handlers.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var _ usecase.TxRunner = (*Store)(nil)

type state struct {
	products       map[string]entity.Product
	warehouses     map[string]entity.Warehouse
	inventory      map[string]entity.Inventory
	movements      []entity.InventoryMovement
	purchaseOrders map[string]entity.PurchaseOrder
	alerts         map[string]entity.StockAlert
	users          map[string]entity.User
}

func newState() *state {
	return &state{
		products:       make(map[string]entity.Product),
		warehouses:     make(map[string]entity.Warehouse),
		inventory:      make(map[string]entity.Inventory),
		purchaseOrders: make(map[string]entity.PurchaseOrder),
		alerts:         make(map[string]entity.StockAlert),
		users:          make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	c.movements = append([]entity.InventoryMovement(nil), s.movements...)
	for k, v := range s.purchaseOrders {
		c.purchaseOrders[k] = v
	}
	for k, v := range s.alerts {
		c.alerts[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store guarda todo el estado bajo un mutex. Las transacciones trabajan sobre una copia
// que solo reemplaza al estado si la función termina sin error.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Repos devuelve los repositorios atados al estado confirmado.
func (s *Store) Repos() repository.Repos {
	return s.reposOn(&s.mu, func() *state { return s.data })
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo {
	return &UserRepo{view{lock: &s.mu, st: func() *state { return s.data }}}
}

// Run ejecuta fn sobre una copia del estado; las escrituras concurrentes fuera de la
// transacción esperan a que termine.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.data.clone()
	if err := fn(s.reposOn(noLock{}, func() *state { return snap })); err != nil {
		return err
	}
	s.data = snap
	return nil
}

func (s *Store) reposOn(lock sync.Locker, st func() *state) repository.Repos {
	v := view{lock: lock, st: st}
	return repository.Repos{
		Products:       &ProductRepo{v},
		Warehouses:     &WarehouseRepo{v},
		Inventory:      &InventoryRepo{v},
		Movements:      &MovementRepo{v},
		PurchaseOrders: &PurchaseOrderRepo{v},
		Alerts:         &StockAlertRepo{v},
	}
}

// view es la base de todos los repositorios: el candado a tomar (ninguno dentro de una tx)
// y el estado sobre el que operan.
type view struct {
	lock sync.Locker
	st   func() *state
}

func (v view) read(fn func(s *state)) {
	v.lock.Lock()
	defer v.lock.Unlock()
	fn(v.st())
}

func (v view) write(fn func(s *state) error) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	return fn(v.st())
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
