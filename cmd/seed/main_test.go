package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/memory"
)

func TestParseCatalog_ISO88591(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>
<catalogo>
  <bodega nombre="Bodega Sur" ubicacion="Medellín"/>
  <producto nombre="Café molido" sku="CAF-500" categoria="Alimentos" precio="18500.50"/>
  <producto nombre="Azúcar" sku="AZU-1" precio=""/>
</catalogo>`
	encoded, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	warehouses, products, err := parseCatalog(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)

	require.Len(t, warehouses, 1)
	assert.Equal(t, "Medellín", warehouses[0].Location)
	require.Len(t, products, 2)
	assert.Equal(t, "Café molido", products[0].Name)
	assert.Equal(t, "18500.5", products[0].Price.String())
	assert.True(t, products[1].Price.IsZero())
}

func TestParseCatalog_PrecioInvalido(t *testing.T) {
	_, _, err := parseCatalog(bytes.NewReader([]byte(`<catalogo><producto nombre="X" sku="X-1" precio="abc"/></catalogo>`)))
	assert.Error(t, err)
}

func TestSeedUser_CreaYPromueve(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()

	err := seedUser(ctx, users, "admin", "", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, seedUser(ctx, users, "admin", "secreto1", entity.RoleUser))
	u, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleUser, u.Role)

	require.NoError(t, seedUser(ctx, users, "admin", "", entity.RoleManager))
	u, err = users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto1")))

	assert.ErrorIs(t, seedUser(ctx, users, "admin", "", "ROOT"), domain.ErrInvalidInput)
}

func TestSeedUser_PasswordLarga(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()
	long := strings.Repeat("a", 80)

	assert.ErrorIs(t, seedUser(ctx, users, "admin", long, entity.RoleAdmin), domain.ErrInvalidInput)
	u, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, seedUser(ctx, users, "admin", "secreto1", entity.RoleAdmin))
	assert.ErrorIs(t, seedUser(ctx, users, "admin", long, entity.RoleAdmin), domain.ErrInvalidInput)
	u, err = users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto1")))
}
