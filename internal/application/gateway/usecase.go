// Package gateway adapta los comandos entrantes al servicio de ledger: verifica
// que las referencias maestras existan (tienda, producto y, en entradas, el
// encargado/proveedor de la atribución) antes de invocar al ledger, que por
// contrato no las re-valida.
package gateway

import (
	"context"

	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

// UseCase gateway de comandos de stock.
type UseCase struct {
	ledger      *ledger.UseCase
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	managerRepo repository.ManagerRepository
	vendorRepo  repository.VendorRepository
}

// NewUseCase construye el gateway.
func NewUseCase(
	ledgerUC *ledger.UseCase,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	managerRepo repository.ManagerRepository,
	vendorRepo repository.VendorRepository,
) *UseCase {
	return &UseCase{
		ledger:      ledgerUC,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		managerRepo: managerRepo,
		vendorRepo:  vendorRepo,
	}
}

// StockIn valida las referencias y registra la entrada. La atribución es
// opcional, pero si viene debe apuntar a un encargado/proveedor reales.
func (uc *UseCase) StockIn(ctx context.Context, in ledger.StockInInput) (*entity.Stock, error) {
	if err := uc.checkPair(ctx, in.StoreID, in.ProductID); err != nil {
		return nil, err
	}
	if in.ManagerID != nil {
		m, err := uc.managerRepo.GetByID(ctx, *in.ManagerID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.VendorID != nil {
		v, err := uc.vendorRepo.GetByID(ctx, *in.VendorID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, domain.ErrNotFound
		}
	}
	return uc.ledger.StockIn(ctx, in)
}

// Sell valida las referencias y registra la venta.
func (uc *UseCase) Sell(ctx context.Context, storeID, productID, quantity int64) (*entity.Stock, error) {
	if err := uc.checkPair(ctx, storeID, productID); err != nil {
		return nil, err
	}
	return uc.ledger.Sell(ctx, storeID, productID, quantity)
}

// RemoveStock valida las referencias y registra el retiro.
func (uc *UseCase) RemoveStock(ctx context.Context, storeID, productID, quantity int64) (*entity.Stock, error) {
	if err := uc.checkPair(ctx, storeID, productID); err != nil {
		return nil, err
	}
	return uc.ledger.RemoveStock(ctx, storeID, productID, quantity)
}

func (uc *UseCase) checkPair(ctx context.Context, storeID, productID int64) error {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}
