package ledger

import (
	"context"

	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización de stock y el
// registro del movimiento se confirmen juntos o no se confirme ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// StockCacheInvalidator desacopla el ledger de la caché de lecturas: tras cada
// commit se invalida la entrada de la pareja afectada y la lista de su tienda.
type StockCacheInvalidator interface {
	Invalidate(ctx context.Context, storeID, productID int64)
}
