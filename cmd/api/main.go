package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/inventory-ims/docs"
	"github.com/jhoicas/inventory-ims/internal/application/auth"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/export"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/lock"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-ims/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-ims/internal/interfaces/http"
	"github.com/jhoicas/inventory-ims/pkg/config"
	"github.com/jhoicas/inventory-ims/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos    repository.Repos
		txRunner usecase.TxRunner
		userRepo repository.UserRepository
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		repos, txRunner, userRepo = store.Repos(), store, store.Users()
		log.Warn().Msg("persistencia en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = postgres.NewRepos(pool)
		txRunner = postgres.NewTxRunner(pool)
		userRepo = postgres.NewUserRepository(pool)
	}

	// Candados por par producto/bodega: Redis si está configurado (varias instancias), si no en proceso.
	var (
		locker      usecase.KeyLocker = lock.NewLocalLocker()
		authLimiter httpRouter.RateLimiter
	)
	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.Redis.LockTTL, log)
		authLimiter = redis_rate.NewLimiter(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis habilitado para candados y rate limit")
	}

	alertUC := usecase.NewStockAlertUseCase(repos, log)
	productUC := usecase.NewProductUseCase(repos.Products)
	warehouseUC := usecase.NewWarehouseUseCase(repos.Warehouses)
	inventoryUC := usecase.NewInventoryUseCase(repos, txRunner, locker, alertUC)
	movementUC := usecase.NewMovementUseCase(repos, txRunner, locker, alertUC)
	purchaseOrderUC := usecase.NewPurchaseOrderUseCase(repos, txRunner, locker, alertUC, log)
	reportingUC := usecase.NewReportingUseCase(repos)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		ProductUC:          productUC,
		WarehouseUC:        warehouseUC,
		InventoryUC:        inventoryUC,
		MovementUC:         movementUC,
		PurchaseOrderUC:    purchaseOrderUC,
		StockAlertUC:       alertUC,
		ReportingUC:        reportingUC,
		Exporters:          export.ForFormat,
		JWTSecret:          cfg.JWT.Secret,
		AuthLimiter:        authLimiter,
		AuthLimitPerMinute: cfg.HTTP.AuthRateLimitPerMinute,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
