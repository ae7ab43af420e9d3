package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una tienda; nil si no hay registro.
func (r *StockRepo) Get(ctx context.Context, storeID, productID int64) (*entity.Stock, error) {
	query := `
		SELECT store_id, product_id, quantity, updated_at
		FROM stock WHERE store_id = $1 AND product_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, storeID, productID).Scan(
		&s.StoreID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Serializa las operaciones concurrentes sobre la misma pareja tienda+producto;
// filas distintas no se bloquean entre sí.
func (r *StockRepo) GetForUpdate(ctx context.Context, storeID, productID int64) (*entity.Stock, error) {
	query := `
		SELECT store_id, product_id, quantity, updated_at
		FROM stock WHERE store_id = $1 AND product_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, storeID, productID).Scan(
		&s.StoreID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ApplyDelta aplica el delta en un solo statement: el upsert toma el lock de fila,
// así que dos deltas concurrentes sobre la misma pareja se serializan. El CHECK
// (quantity >= 0) de la tabla respalda la invariante aunque la validación del
// servicio de ledger fallara.
func (r *StockRepo) ApplyDelta(ctx context.Context, storeID, productID, delta int64) (*entity.Stock, error) {
	query := `
		INSERT INTO stock (store_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (store_id, product_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity, updated_at`
	s := entity.Stock{StoreID: storeID, ProductID: productID}
	err := r.q.QueryRow(ctx, query, storeID, productID, delta).Scan(&s.Quantity, &s.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.ErrNegativeQuantity
		}
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}
	return &s, nil
}

// ListByStore lista el stock de una tienda.
func (r *StockRepo) ListByStore(ctx context.Context, storeID int64, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT store_id, product_id, quantity, updated_at
		FROM stock WHERE store_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by store: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.StoreID, &s.ProductID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
