package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bazar-api/internal/application/gateway"
	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/application/usecase"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
	"github.com/tu-usuario/bazar-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Gateway   *gateway.UseCase
	Query     *ledger.QueryUseCase
	MovRepo   repository.StockMovementRepository
	StoreUC   *usecase.StoreUseCase
	ProductUC *usecase.ProductUseCase
	VendorUC  *usecase.VendorUseCase
	ManagerUC *usecase.ManagerUseCase
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stores (datos maestros)
	stores := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", storeHandler.Update)
	stores.Delete("/:id", storeHandler.Delete)

	// Products (datos maestros)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Vendors (datos maestros)
	vendors := api.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Delete("/:id", vendorHandler.Delete)

	// Managers (datos maestros)
	managers := api.Group("/managers")
	managerHandler := NewManagerHandler(deps.ManagerUC)
	managers.Post("/", managerHandler.Create)
	managers.Get("/", managerHandler.List)
	managers.Get("/:id", managerHandler.GetByID)
	managers.Delete("/:id", managerHandler.Delete)

	// Ledger: comandos y lecturas de stock por tienda
	storeScoped := api.Group("/stores/:storeId")
	stockHandler := NewStockHandler(deps.Gateway, deps.Query)
	storeScoped.Post("/stock-in", stockHandler.StockIn)
	storeScoped.Post("/sell", stockHandler.Sell)
	storeScoped.Post("/remove-stock", stockHandler.RemoveStock)
	storeScoped.Get("/stock", stockHandler.ListStock)
	storeScoped.Get("/stock/:productId", stockHandler.GetStock)

	// Historial de movimientos
	movementHandler := NewMovementHandler(deps.Query, deps.MovRepo, deps.Log)
	storeScoped.Get("/stock-movements", movementHandler.List)
	storeScoped.Get("/stock-movements/:movementId", movementHandler.GetByID)
	storeScoped.Delete("/stock-movements/:movementId", movementHandler.Delete)
}
