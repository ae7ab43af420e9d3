package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type queryFixture struct {
	uc     *ledger.UseCase
	query  *ledger.QueryUseCase
	ledger *ledgerFixture
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()
	f := newLedgerFixture(t)
	return &queryFixture{
		uc:     f.uc,
		query:  ledger.NewQueryUseCase(f.stock, f.movs, nil),
		ledger: f,
	}
}

// fakeCache implementación en memoria del puerto de caché para verificar el
// patrón cache-aside sin Redis.
type fakeCache struct {
	stocks   map[[2]int64]*entity.Stock
	lists    map[int64][]*entity.Stock
	hits     int
	listHits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		stocks: make(map[[2]int64]*entity.Stock),
		lists:  make(map[int64][]*entity.Stock),
	}
}

func (c *fakeCache) GetStock(_ context.Context, storeID, productID int64) (*entity.Stock, bool) {
	s, ok := c.stocks[[2]int64{storeID, productID}]
	if ok {
		c.hits++
	}
	return s, ok
}

func (c *fakeCache) SetStock(_ context.Context, stock *entity.Stock) {
	c.stocks[[2]int64{stock.StoreID, stock.ProductID}] = stock
}

func (c *fakeCache) GetStockList(_ context.Context, storeID int64) ([]*entity.Stock, bool) {
	l, ok := c.lists[storeID]
	if ok {
		c.listHits++
	}
	return l, ok
}

func (c *fakeCache) SetStockList(_ context.Context, storeID int64, list []*entity.Stock) {
	c.lists[storeID] = list
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStockDevuelveNilSinRegistro(t *testing.T) {
	f := newQueryFixture(t)

	stock, err := f.query.GetStock(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Nil(t, stock, "pareja sin historial no tiene registro")
}

func TestGetStockTrasOperaciones(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 8})
	require.NoError(t, err)
	_, err = f.uc.Sell(ctx, 1, 1, 3)
	require.NoError(t, err)

	stock, err := f.query.GetStock(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.Equal(t, int64(5), stock.Quantity)
}

func TestGetStockPoblaYUsaLaCache(t *testing.T) {
	f := newLedgerFixture(t)
	cache := newFakeCache()
	query := ledger.NewQueryUseCase(f.stock, f.movs, cache)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 6})
	require.NoError(t, err)

	// Primera lectura: miss, puebla la caché.
	stock, err := query.GetStock(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.Equal(t, 0, cache.hits)

	// Segunda lectura: hit.
	stock, err = query.GetStock(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.Equal(t, int64(6), stock.Quantity)
	assert.Equal(t, 1, cache.hits)
}

func TestGetStockDesdeCacheConservaUpdatedAt(t *testing.T) {
	f := newLedgerFixture(t)
	cache := newFakeCache()
	query := ledger.NewQueryUseCase(f.stock, f.movs, cache)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 4})
	require.NoError(t, err)

	first, err := query.GetStock(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.False(t, first.UpdatedAt.IsZero())

	// La lectura servida desde caché devuelve la misma fila, con su fecha real.
	second, err := query.GetStock(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 1, cache.hits)
	assert.False(t, second.UpdatedAt.IsZero(), "la caché guarda la fila completa")
	assert.True(t, second.UpdatedAt.Equal(first.UpdatedAt))
}

func TestListStockSoloDeLaTienda(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 2, Quantity: 2})
	require.NoError(t, err)
	_, err = f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 2, ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	list, err := f.query.ListStock(ctx, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, s := range list {
		assert.Equal(t, int64(1), s.StoreID)
	}
}

func TestListStockCacheNoRecortaLimitesMayores(t *testing.T) {
	f := newLedgerFixture(t)
	cache := newFakeCache()
	query := ledger.NewQueryUseCase(f.stock, f.movs, cache)
	ctx := context.Background()

	for p := int64(1); p <= 30; p++ {
		_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: p, Quantity: p})
		require.NoError(t, err)
	}

	// Página parcial: no debe quedar cacheada como lista de la tienda.
	list, err := query.ListStock(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 10)

	// Un límite mayor tiene que ver más filas, no la página anterior.
	list, err = query.ListStock(ctx, 1, 25, 0)
	require.NoError(t, err)
	require.Len(t, list, 25)

	// Límite que cubre toda la tienda: la lista completa sí se cachea.
	list, err = query.ListStock(ctx, 1, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 30)

	// Un hit posterior se recorta al límite pedido.
	list, err = query.ListStock(ctx, 1, 5, 0)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, 1, cache.listHits)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial: orden y filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovementsOrdenAscendenteConDesempatePorID(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 1})
		require.NoError(t, err)
	}

	movs, err := f.query.ListMovements(ctx, 1, nil, nil, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, movs, 5)
	for i := 1; i < len(movs); i++ {
		prev, cur := movs[i-1], movs[i]
		notBefore := !cur.Timestamp.Before(prev.Timestamp)
		assert.True(t, notBefore, "timestamps en orden ascendente")
		if cur.Timestamp.Equal(prev.Timestamp) {
			assert.Greater(t, cur.ID, prev.ID, "empates resueltos por ID de inserción")
		}
	}
}

func TestListMovementsFiltraPorProducto(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 2, Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	productID := int64(1)
	movs, err := f.query.ListMovements(ctx, 1, &productID, nil, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, productID, m.ProductID)
	}
}

func TestListMovementsFiltraPorRango(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Minute)
	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	after := time.Now().Add(time.Minute)

	movs, err := f.query.ListMovements(ctx, 1, nil, &before, &after, 20, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	// Rango que no cubre el movimiento.
	farPast := before.Add(-time.Hour)
	movs, err = f.query.ListMovements(ctx, 1, nil, &farPast, &before, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestListMovementsRangoInvertido(t *testing.T) {
	f := newQueryFixture(t)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err := f.query.ListMovements(context.Background(), 1, nil, &from, &to, 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetMovementVerificaLaTienda(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	movs := f.ledger.movements(t, 1)
	require.Len(t, movs, 1)

	mov, err := f.query.GetMovement(ctx, 1, movs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, movs[0].ID, mov.ID)

	// Mismo ID consultado desde otra tienda: no existe para ella.
	_, err = f.query.GetMovement(ctx, 2, movs[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
