package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

// failingQuerier falla el test si algún repositorio llega a consultar la base.
type failingQuerier struct{ t *testing.T }

func (q failingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.t.Fatal("Exec no esperado")
	return pgconn.CommandTag{}, nil
}

func (q failingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.t.Fatal("Query no esperado")
	return nil, nil
}

func (q failingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.t.Fatal("QueryRow no esperado")
	return nil
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID(uuid.NewString()))
	assert.False(t, isUUID("abc"))
	assert.False(t, isUUID(""))
	assert.False(t, isUUID("12345678-1234-1234-1234-12345678901Z"))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert product: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(dup))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "22P02"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("otro")))
}

// Un id que no es UUID se resuelve como inexistente sin tocar la base.
func TestRepositorios_IDNoUUIDNoConsultaLaBase(t *testing.T) {
	ctx := context.Background()
	q := failingQuerier{t: t}

	p, err := NewProductRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	w, err := NewWarehouseRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, w)

	inv, err := NewInventoryRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, inv)

	inv, err = NewInventoryRepository(q).GetByProductAndWarehouse(ctx, "abc", uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, inv)

	po, err := NewPurchaseOrderRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, po)

	a, err := NewStockAlertRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, a)

	u, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, u)

	moves, err := NewInventoryMovementRepository(q).List(ctx, repository.MovementFilter{ProductID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, moves)
}
