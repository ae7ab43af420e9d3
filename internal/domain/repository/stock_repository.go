package repository

import (
	"context"

	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el stock por
// tienda+producto. Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el stock actual o nil si la pareja no tiene registro.
	Get(ctx context.Context, storeID, productID int64) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); nil si no existe.
	GetForUpdate(ctx context.Context, storeID, productID int64) (*entity.Stock, error)
	// ApplyDelta aplica el delta de forma atómica por fila y devuelve la fila
	// resultante. Crea la fila si no existe y el delta es positivo. Devuelve
	// domain.ErrNegativeQuantity si el resultado quedaría por debajo de cero
	// (incluido delta negativo sin fila previa).
	ApplyDelta(ctx context.Context, storeID, productID, delta int64) (*entity.Stock, error)
	ListByStore(ctx context.Context, storeID int64, limit, offset int) ([]*entity.Stock, error)
}
