// seed crea o promueve un usuario con rol y carga un catálogo inicial de bodegas y productos.
//
// Uso:
//
//	go run ./cmd/seed --username admin --password secreto --role ADMIN
//	go run ./cmd/seed --catalog catalogo.xml
//
// Usa la misma configuración que la API (DB_*, DATABASE_URL).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jhoicas/inventory-ims/internal/application/auth"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-ims/pkg/config"
	"github.com/jhoicas/inventory-ims/pkg/logger"
)

func main() {
	username := pflag.String("username", "", "usuario a crear o promover")
	password := pflag.String("password", "", "password (requerido al crear; opcional al promover)")
	role := pflag.String("role", entity.RoleAdmin, "rol: ADMIN, MANAGER o USER")
	catalogPath := pflag.String("catalog", "", "XML con bodegas y productos")
	pflag.Parse()

	if *username == "" && *catalogPath == "" {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *username != "" {
		if err := seedUser(ctx, postgres.NewUserRepository(pool), *username, *password, strings.ToUpper(*role)); err != nil {
			log.Fatal().Err(err).Str("username", *username).Msg("usuario")
		}
		log.Info().Str("username", *username).Str("role", strings.ToUpper(*role)).Msg("usuario listo")
	}

	if *catalogPath != "" {
		f, err := os.Open(*catalogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir catálogo")
		}
		defer f.Close()

		warehouses, products, err := parseCatalog(f)
		if err != nil {
			log.Fatal().Err(err).Msg("catálogo")
		}
		repos := postgres.NewRepos(pool)
		warehouseUC := usecase.NewWarehouseUseCase(repos.Warehouses)
		productUC := usecase.NewProductUseCase(repos.Products)

		created, skipped := 0, 0
		for _, w := range warehouses {
			if _, err := warehouseUC.Create(ctx, w); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					skipped++
					continue
				}
				log.Fatal().Err(err).Str("warehouse", w.Name).Msg("crear bodega")
			}
			created++
		}
		for _, p := range products {
			if _, err := productUC.Create(ctx, p); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					skipped++
					continue
				}
				log.Fatal().Err(err).Str("sku", p.SKU).Msg("crear producto")
			}
			created++
		}
		log.Info().Int("creados", created).Int("omitidos", skipped).Msg("catálogo cargado")
	}
}

// seedUser crea el usuario o, si ya existe, le asigna el rol (y el password si se indicó).
func seedUser(ctx context.Context, users repository.UserRepository, username, password, role string) error {
	existing, err := users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing == nil {
		if password == "" {
			return fmt.Errorf("%w: password requerido para crear %s", domain.ErrInvalidInput, username)
		}
		user, err := auth.NewUser(username, password, role)
		if err != nil {
			return err
		}
		return users.Create(ctx, user)
	}

	if !entity.IsValidRole(role) {
		return fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	existing.Role = role
	if password != "" {
		withPassword, err := auth.NewUser(username, password, role)
		if err != nil {
			return err
		}
		existing.PasswordHash = withPassword.PasswordHash
	}
	return users.Update(ctx, existing)
}
