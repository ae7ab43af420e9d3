package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos de una tienda.
type MovementFilter struct {
	ProductID *int64
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia del historial de
// movimientos. Create y las lecturas son el contrato normal del ledger
// (append-only); Delete existe solo como override administrativa y nunca se
// invoca desde el ledger.
type StockMovementRepository interface {
	// Create persiste el movimiento y asigna su ID monótono.
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	// ListByStore devuelve movimientos ordenados por timestamp ascendente,
	// desempatando por ID de inserción.
	ListByStore(ctx context.Context, storeID int64, filter MovementFilter) ([]*entity.StockMovement, error)
	Delete(ctx context.Context, id int64) error
}
