package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
	"github.com/tu-usuario/bazar-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// ledgerFixture agrupa el servicio bajo prueba junto con los repos directos
// para inspeccionar estado e historial tras cada operación.
type ledgerFixture struct {
	uc    *ledger.UseCase
	stock repository.StockRepository
	movs  repository.StockMovementRepository
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := memory.NewLedgerStore()
	return &ledgerFixture{
		uc:    ledger.NewUseCase(memory.NewTxRunner(store), nil, nil),
		stock: memory.NewStockRepository(store),
		movs:  memory.NewStockMovementRepository(store),
	}
}

func (f *ledgerFixture) quantity(t *testing.T, storeID, productID int64) int64 {
	t.Helper()
	s, err := f.stock.Get(context.Background(), storeID, productID)
	require.NoError(t, err)
	require.NotNil(t, s, "la pareja debe tener registro de stock")
	return s.Quantity
}

func (f *ledgerFixture) movements(t *testing.T, storeID int64) []*entity.StockMovement {
	t.Helper()
	list, err := f.movs.ListByStore(context.Background(), storeID, repository.MovementFilter{Limit: 1000})
	require.NoError(t, err)
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de cantidades
// ──────────────────────────────────────────────────────────────────────────────

func TestStockInRechazaCantidadNoPositiva(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	for _, qty := range []int64{0, -1, -100} {
		_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: qty})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d", qty)
	}
	assert.Empty(t, f.movements(t, 1), "una operación rechazada no deja movimiento")
}

func TestVentaRechazaCantidadNoPositiva(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 5})
	require.NoError(t, err)

	for _, qty := range []int64{0, -3} {
		_, err := f.uc.Sell(ctx, 1, 1, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d", qty)
	}
	assert.Equal(t, int64(5), f.quantity(t, 1, 1), "el rechazo no toca el stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aditividad y conservación
// ──────────────────────────────────────────────────────────────────────────────

func TestStockInEsAditivo(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	stock, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 7, Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(10), stock.Quantity)

	stock, err = f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 7, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(14), stock.Quantity)
	assert.Equal(t, int64(14), f.quantity(t, 1, 7))
}

// La cantidad actual debe ser siempre la suma de los cambios del historial.
func TestCantidadEsSumaDelHistorial(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 2, ProductID: 5, Quantity: 10})
	require.NoError(t, err)
	_, err = f.uc.Sell(ctx, 2, 5, 4)
	require.NoError(t, err)
	_, err = f.uc.RemoveStock(ctx, 2, 5, 3)
	require.NoError(t, err)

	var sum int64
	for _, m := range f.movements(t, 2) {
		sum += m.QuantityChange
	}
	assert.Equal(t, f.quantity(t, 2, 5), sum)
	assert.Equal(t, int64(3), sum)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario guiado: entradas, ventas, retiros y rechazo por insuficiencia
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioVentaYRetiro(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	stock, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 10})
	require.NoError(t, err)
	require.Equal(t, int64(10), stock.Quantity)

	stock, err = f.uc.Sell(ctx, 1, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stock.Quantity)

	stock, err = f.uc.RemoveStock(ctx, 1, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stock.Quantity)

	// Pedir 100 con 3 disponibles: rechazo con solicitado y disponible.
	_, err = f.uc.Sell(ctx, 1, 1, 100)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(100), insufficient.Requested)
	assert.Equal(t, int64(3), insufficient.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no deja rastro: ni stock ni movimiento.
	assert.Equal(t, int64(3), f.quantity(t, 1, 1))
	movs := f.movements(t, 1)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementTypeStockIn, movs[0].Type)
	assert.Equal(t, entity.MovementTypeSale, movs[1].Type)
	assert.Equal(t, entity.MovementTypeRemoval, movs[2].Type)
}

func TestVentaSobreParejaSinRegistro(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.uc.Sell(context.Background(), 9, 9, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotStocked)
	assert.Empty(t, f.movements(t, 9))
}

// Vender exactamente lo disponible deja la pareja registrada con cantidad cero,
// que no es lo mismo que sin registro: la siguiente venta falla por
// insuficiencia, no por falta de registro.
func TestVenderTodoDejaCantidadCeroRegistrada(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 2, Quantity: 5})
	require.NoError(t, err)
	stock, err := f.uc.Sell(ctx, 1, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock.Quantity)
	assert.Equal(t, int64(0), f.quantity(t, 1, 2))

	_, err = f.uc.Sell(ctx, 1, 2, 1)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), insufficient.Available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Marca temporal del movimiento
// ──────────────────────────────────────────────────────────────────────────────

// Cada movimiento lleva la hora de la operación: nunca cero, nunca anterior al
// inicio de la operación y nunca en el futuro.
func TestMovimientosLlevanHoraDeLaOperacion(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	start := time.Now()
	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 6})
	require.NoError(t, err)
	_, err = f.uc.Sell(ctx, 1, 1, 2)
	require.NoError(t, err)
	_, err = f.uc.RemoveStock(ctx, 1, 1, 1)
	require.NoError(t, err)
	end := time.Now()

	movs := f.movements(t, 1)
	require.Len(t, movs, 3)
	for _, m := range movs {
		require.False(t, m.Timestamp.IsZero(), "movimiento %s sin marca temporal", m.Type)
		assert.False(t, m.Timestamp.Before(start), "movimiento %s anterior al inicio", m.Type)
		assert.False(t, m.Timestamp.After(end), "movimiento %s en el futuro", m.Type)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Atribución del movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestStockInRegistraAtribucion(t *testing.T) {
	f := newLedgerFixture(t)
	managerID := int64(3)
	vendorID := int64(8)

	_, err := f.uc.StockIn(context.Background(), ledger.StockInInput{
		StoreID: 1, ProductID: 1, Quantity: 2,
		ManagerID: &managerID, VendorID: &vendorID,
	})
	require.NoError(t, err)

	movs := f.movements(t, 1)
	require.Len(t, movs, 1)
	require.NotNil(t, movs[0].ManagerID)
	require.NotNil(t, movs[0].VendorID)
	assert.Equal(t, managerID, *movs[0].ManagerID)
	assert.Equal(t, vendorID, *movs[0].VendorID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: N entradas de 1 sobre la misma pareja suman exactamente N
// ──────────────────────────────────────────────────────────────────────────────

func TestEntradasConcurrentesNoSePierden(t *testing.T) {
	f := newLedgerFixture(t)
	const n = 100

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := f.uc.StockIn(context.Background(), ledger.StockInInput{
				StoreID: 1, ProductID: 1, Quantity: 1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), f.quantity(t, 1, 1))
	assert.Len(t, f.movements(t, 1), n)
}

func TestVentasConcurrentesNuncaDejanNegativo(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 10})
	require.NoError(t, err)

	// 30 ventas de 1 contra 10 disponibles: exactamente 10 deben triunfar.
	const attempts = 30
	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, rejected int
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := f.uc.Sell(ctx, 1, 1, 1)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, attempts-10, rejected)
	assert.Equal(t, int64(0), f.quantity(t, 1, 1))
}

// ──────────────────────────────────────────────────────────────────────────────
// Independencia entre parejas tienda+producto
// ──────────────────────────────────────────────────────────────────────────────

func TestParejasIndependientes(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 1, Quantity: 5})
	require.NoError(t, err)
	_, err = f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 1, ProductID: 2, Quantity: 7})
	require.NoError(t, err)
	_, err = f.uc.StockIn(ctx, ledger.StockInInput{StoreID: 2, ProductID: 1, Quantity: 9})
	require.NoError(t, err)

	_, err = f.uc.Sell(ctx, 1, 1, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.quantity(t, 1, 1))
	assert.Equal(t, int64(7), f.quantity(t, 1, 2))
	assert.Equal(t, int64(9), f.quantity(t, 2, 1))
}
