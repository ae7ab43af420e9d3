package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

// StockReader lecturas de stock con caché opcional por delante (cache-aside).
// Las entradas de pareja guardan la fila completa para que un hit devuelva lo
// mismo que un miss; la entrada de lista solo se escribe cuando está completa.
type StockReader interface {
	GetStock(ctx context.Context, storeID, productID int64) (*entity.Stock, bool)
	SetStock(ctx context.Context, stock *entity.Stock)
	GetStockList(ctx context.Context, storeID int64) ([]*entity.Stock, bool)
	SetStockList(ctx context.Context, storeID int64, list []*entity.Stock)
}

// QueryUseCase expone las lecturas del ledger: stock actual y consulta del
// historial de movimientos. Solo lectura, sin efectos sobre el estado.
type QueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
	cache     StockReader // opcional, puede ser nil
}

// NewQueryUseCase construye las consultas; los repos van atados al pool, no a una tx.
func NewQueryUseCase(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, cache StockReader) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo, cache: cache}
}

// GetStock devuelve el stock actual de una pareja tienda+producto; nil si la
// pareja no tiene registro. Pasa primero por la caché si está configurada.
func (uc *QueryUseCase) GetStock(ctx context.Context, storeID, productID int64) (*entity.Stock, error) {
	if uc.cache != nil {
		if stock, ok := uc.cache.GetStock(ctx, storeID, productID); ok {
			return stock, nil
		}
	}
	stock, err := uc.stockRepo.Get(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if stock != nil && uc.cache != nil {
		uc.cache.SetStock(ctx, stock)
	}
	return stock, nil
}

// ListStock lista el stock de una tienda. La caché solo guarda la lista cuando
// está completa (el repo devolvió menos filas que el límite pedido); un hit se
// recorta al límite de la petición, nunca al de la petición que lo pobló.
func (uc *QueryUseCase) ListStock(ctx context.Context, storeID int64, limit, offset int) ([]*entity.Stock, error) {
	cacheable := uc.cache != nil && offset == 0
	if cacheable {
		if list, ok := uc.cache.GetStockList(ctx, storeID); ok {
			if len(list) > limit {
				list = list[:limit]
			}
			return list, nil
		}
	}
	list, err := uc.stockRepo.ListByStore(ctx, storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	if cacheable && len(list) < limit {
		uc.cache.SetStockList(ctx, storeID, list)
	}
	return list, nil
}

// ListMovements consulta el historial de una tienda con filtros opcionales de
// producto y rango. Un rango invertido es error del caller.
func (uc *QueryUseCase) ListMovements(ctx context.Context, storeID int64, productID *int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByStore(ctx, storeID, repository.MovementFilter{
		ProductID: productID,
		From:      from,
		To:        to,
		Limit:     limit,
		Offset:    offset,
	})
}

// GetMovement devuelve un movimiento verificando que pertenezca a la tienda.
func (uc *QueryUseCase) GetMovement(ctx context.Context, storeID, movementID int64) (*entity.StockMovement, error) {
	mov, err := uc.movRepo.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil || mov.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}
