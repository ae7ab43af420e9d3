// Package rediscache implementa la caché de lecturas de stock sobre Redis.
// Política explícita: cache-aside con invalidación por (storeID, productID) y por
// lista de tienda tras cada mutación confirmada del ledger. Los errores de Redis
// se tratan como miss: la caché nunca es fuente de verdad.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

const (
	stockKeyPrefix     = "stock:"
	stockListKeyPrefix = "stocklist:"
	defaultTTL         = 5 * time.Minute
)

var _ ledger.StockCacheInvalidator = (*StockCache)(nil)
var _ ledger.StockReader = (*StockCache)(nil)

// StockCache caché de stock por pareja y de listas por tienda.
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New construye la caché con el TTL por defecto.
func New(client *redis.Client) *StockCache {
	return &StockCache{client: client, ttl: defaultTTL}
}

func pairKey(storeID, productID int64) string {
	return fmt.Sprintf("%s%d:%d", stockKeyPrefix, storeID, productID)
}

func listKey(storeID int64) string {
	return fmt.Sprintf("%s%d", stockListKeyPrefix, storeID)
}

// GetStock devuelve la fila de stock cacheada; false en miss o error.
func (c *StockCache) GetStock(ctx context.Context, storeID, productID int64) (*entity.Stock, bool) {
	raw, err := c.client.Get(ctx, pairKey(storeID, productID)).Bytes()
	if err != nil {
		return nil, false
	}
	var s entity.Stock
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}

// SetStock guarda la fila completa con TTL; el error se ignora (solo caché).
func (c *StockCache) SetStock(ctx context.Context, stock *entity.Stock) {
	raw, err := json.Marshal(stock)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, pairKey(stock.StoreID, stock.ProductID), raw, c.ttl).Err()
}

// GetStockList devuelve la lista de stock de la tienda; false en miss o error.
func (c *StockCache) GetStockList(ctx context.Context, storeID int64) ([]*entity.Stock, bool) {
	raw, err := c.client.Get(ctx, listKey(storeID)).Bytes()
	if err != nil {
		return nil, false
	}
	var list []*entity.Stock
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

// SetStockList guarda la lista de la tienda con TTL.
func (c *StockCache) SetStockList(ctx context.Context, storeID int64, list []*entity.Stock) {
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, listKey(storeID), raw, c.ttl).Err()
}

// Invalidate elimina la entrada de la pareja y la lista de su tienda. Se llama
// después del commit de cada operación del ledger.
func (c *StockCache) Invalidate(ctx context.Context, storeID, productID int64) {
	_ = c.client.Del(ctx, pairKey(storeID, productID), listKey(storeID)).Err()
}
