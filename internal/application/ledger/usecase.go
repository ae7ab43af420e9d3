package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
	"github.com/tu-usuario/bazar-api/pkg/logger"
)

// UseCase es el servicio de ledger: valida la operación, actualiza el stock y
// registra el movimiento como una sola unidad atómica (TxRunner + lock de fila).
// No deduplica peticiones repetidas; la política de reintentos es del caller.
type UseCase struct {
	txRunner TxRunner
	cache    StockCacheInvalidator // opcional, puede ser nil
	log      *logger.Logger
}

// NewUseCase construye el servicio. cache puede ser nil si no hay capa de caché.
func NewUseCase(txRunner TxRunner, cache StockCacheInvalidator, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, cache: cache, log: log}
}

// StockInInput entrada para una entrada de mercancía. ManagerID y VendorID son la
// atribución opcional del movimiento; el gateway ya verificó que existan.
type StockInInput struct {
	StoreID   int64
	ProductID int64
	Quantity  int64
	ManagerID *int64
	VendorID  *int64
}

// StockIn suma Quantity al stock (creando el registro si no existe) y apunta el
// movimiento STOCK_IN con su atribución. Devuelve la fila de stock resultante.
func (uc *UseCase) StockIn(ctx context.Context, in StockInInput) (*entity.Stock, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	var newStock *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// El upsert toma el lock de fila: entradas concurrentes sobre la misma
		// pareja se serializan sin lecturas previas.
		st, err := stockRepo.ApplyDelta(ctx, in.StoreID, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		newStock = st
		mov := &entity.StockMovement{
			StoreID:        in.StoreID,
			ProductID:      in.ProductID,
			QuantityChange: in.Quantity,
			Type:           entity.MovementTypeStockIn,
			Timestamp:      now,
			ManagerID:      in.ManagerID,
			VendorID:       in.VendorID,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.afterCommit(ctx, newStock, entity.MovementTypeStockIn, in.Quantity)
	return newStock, nil
}

// Sell resta Quantity del stock y apunta el movimiento SALE.
func (uc *UseCase) Sell(ctx context.Context, storeID, productID, quantity int64) (*entity.Stock, error) {
	return uc.withdraw(ctx, storeID, productID, quantity, entity.MovementTypeSale)
}

// RemoveStock retira Quantity del stock (merma, daño) y apunta el movimiento
// REMOVAL. Mismo contrato de validación y atomicidad que Sell.
func (uc *UseCase) RemoveStock(ctx context.Context, storeID, productID, quantity int64) (*entity.Stock, error) {
	return uc.withdraw(ctx, storeID, productID, quantity, entity.MovementTypeRemoval)
}

func (uc *UseCase) withdraw(ctx context.Context, storeID, productID, quantity int64, movType string) (*entity.Stock, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	var newStock *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila (SELECT FOR UPDATE) para que la verificación de
		// disponibilidad y la resta sean un solo paso lógico.
		stock, err := stockRepo.GetForUpdate(ctx, storeID, productID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrProductNotStocked
		}
		if stock.Quantity < quantity {
			return &domain.InsufficientStockError{Requested: quantity, Available: stock.Quantity}
		}
		st, err := stockRepo.ApplyDelta(ctx, storeID, productID, -quantity)
		if err != nil {
			return err
		}
		newStock = st
		mov := &entity.StockMovement{
			StoreID:        storeID,
			ProductID:      productID,
			QuantityChange: -quantity,
			Type:           movType,
			Timestamp:      now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.afterCommit(ctx, newStock, movType, -quantity)
	return newStock, nil
}

// afterCommit: invalidación de caché y traza del movimiento ya confirmado.
func (uc *UseCase) afterCommit(ctx context.Context, stock *entity.Stock, movType string, delta int64) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, stock.StoreID, stock.ProductID)
	}
	if uc.log != nil {
		uc.log.Info().
			Int64("store_id", stock.StoreID).
			Int64("product_id", stock.ProductID).
			Str("type", movType).
			Int64("delta", delta).
			Int64("quantity", stock.Quantity).
			Msg("movimiento registrado")
	}
}
