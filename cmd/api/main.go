package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/bazar-api/internal/application/gateway"
	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/application/usecase"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
	"github.com/tu-usuario/bazar-api/internal/infrastructure/memory"
	"github.com/tu-usuario/bazar-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/bazar-api/internal/infrastructure/rediscache"
	httpRouter "github.com/tu-usuario/bazar-api/internal/interfaces/http"
	"github.com/tu-usuario/bazar-api/pkg/config"
	"github.com/tu-usuario/bazar-api/pkg/logger"
)

// repos agrupa los adaptadores de persistencia ya elegidos (postgres o memoria).
type repos struct {
	txRunner ledger.TxRunner
	stock    repository.StockRepository
	movement repository.StockMovementRepository
	store    repository.StoreRepository
	product  repository.ProductRepository
	vendor   repository.VendorRepository
	manager  repository.ManagerRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := buildRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer r.close()

	// Caché de lecturas opcional (cache-aside sobre Redis)
	var invalidator ledger.StockCacheInvalidator
	var reader ledger.StockReader
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no responde, se continúa sin caché")
		} else {
			cache := rediscache.New(client)
			invalidator, reader = cache, cache
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché Redis activa")
		}
	}

	ledgerUC := ledger.NewUseCase(r.txRunner, invalidator, log)
	queryUC := ledger.NewQueryUseCase(r.stock, r.movement, reader)
	gatewayUC := gateway.NewUseCase(ledgerUC, r.store, r.product, r.manager, r.vendor)

	storeUC := usecase.NewStoreUseCase(r.store)
	productUC := usecase.NewProductUseCase(r.product)
	vendorUC := usecase.NewVendorUseCase(r.vendor)
	managerUC := usecase.NewManagerUseCase(r.manager)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bazar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Gateway:   gatewayUC,
		Query:     queryUC,
		MovRepo:   r.movement,
		StoreUC:   storeUC,
		ProductUC: productUC,
		VendorUC:  vendorUC,
		ManagerUC: managerUC,
		Log:       log,
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

// buildRepos conecta el backend elegido: PostgreSQL para producción o el
// almacén en memoria para demos y pruebas locales sin base de datos.
func buildRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	if cfg.App.Storage == "memory" {
		store := memory.NewLedgerStore()
		md := memory.NewMasterData()
		return &repos{
			txRunner: memory.NewTxRunner(store),
			stock:    memory.NewStockRepository(store),
			movement: memory.NewStockMovementRepository(store),
			store:    memory.NewStoreRepository(md),
			product:  memory.NewProductRepository(md),
			vendor:   memory.NewVendorRepository(md),
			manager:  memory.NewManagerRepository(md),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repos{
		txRunner: postgres.NewTxRunner(pool),
		stock:    postgres.NewStockRepository(pool),
		movement: postgres.NewStockMovementRepository(pool),
		store:    postgres.NewStoreRepository(pool),
		product:  postgres.NewProductRepository(pool),
		vendor:   postgres.NewVendorRepository(pool),
		manager:  postgres.NewManagerRepository(pool),
		close:    pool.Close,
	}, nil
}
