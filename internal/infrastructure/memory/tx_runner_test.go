package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
	"github.com/tu-usuario/bazar-api/internal/infrastructure/memory"
)

func TestApplyDeltaRechazaResultadoNegativo(t *testing.T) {
	store := memory.NewLedgerStore()
	repo := memory.NewStockRepository(store)
	ctx := context.Background()

	_, err := repo.ApplyDelta(ctx, 1, 1, -1)
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity, "restar sin registro previo")

	stock, err := repo.ApplyDelta(ctx, 1, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stock.Quantity)
	assert.False(t, stock.UpdatedAt.IsZero(), "la fila devuelta trae su fecha de actualización")

	_, err = repo.ApplyDelta(ctx, 1, 1, -6)
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

	// La fila queda como estaba tras el rechazo.
	s, err := repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(5), s.Quantity)
}

func TestTxRunnerDeshaceTodoSiFnFalla(t *testing.T) {
	store := memory.NewLedgerStore()
	runner := memory.NewTxRunner(store)
	stockRepo := memory.NewStockRepository(store)
	movRepo := memory.NewStockMovementRepository(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := runner.Run(ctx, func(sr repository.StockRepository, mr repository.StockMovementRepository) error {
		if _, err := sr.ApplyDelta(ctx, 1, 1, 10); err != nil {
			return err
		}
		if err := mr.Create(ctx, &entity.StockMovement{
			StoreID: 1, ProductID: 1, QuantityChange: 10, Type: entity.MovementTypeStockIn,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Ni stock ni movimiento visibles tras el rollback.
	s, err := stockRepo.Get(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, s)
	movs, err := movRepo.ListByStore(ctx, 1, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTxRunnerRestauraLaFilaPrevia(t *testing.T) {
	store := memory.NewLedgerStore()
	runner := memory.NewTxRunner(store)
	stockRepo := memory.NewStockRepository(store)
	ctx := context.Background()

	_, err := stockRepo.ApplyDelta(ctx, 1, 1, 7)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = runner.Run(ctx, func(sr repository.StockRepository, _ repository.StockMovementRepository) error {
		if _, err := sr.ApplyDelta(ctx, 1, 1, -3); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	s, err := stockRepo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(7), s.Quantity, "la resta abortada se deshace")
}

func TestTxRunnerRespetaContextoCancelado(t *testing.T) {
	store := memory.NewLedgerStore()
	runner := memory.NewTxRunner(store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := runner.Run(ctx, func(repository.StockRepository, repository.StockMovementRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "con el contexto ya cancelado no se ejecuta fn")
}

// Los IDs consumidos por una transacción abortada no se reutilizan, igual que
// una secuencia BIGSERIAL.
func TestIDsNoSeReutilizanTrasRollback(t *testing.T) {
	store := memory.NewLedgerStore()
	runner := memory.NewTxRunner(store)
	movRepo := memory.NewStockMovementRepository(store)
	ctx := context.Background()

	boom := errors.New("boom")
	err := runner.Run(ctx, func(_ repository.StockRepository, mr repository.StockMovementRepository) error {
		if err := mr.Create(ctx, &entity.StockMovement{StoreID: 1, ProductID: 1, QuantityChange: 1, Type: entity.MovementTypeStockIn}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = runner.Run(ctx, func(_ repository.StockRepository, mr repository.StockMovementRepository) error {
		return mr.Create(ctx, &entity.StockMovement{StoreID: 1, ProductID: 1, QuantityChange: 1, Type: entity.MovementTypeStockIn})
	})
	require.NoError(t, err)

	movs, err := movRepo.ListByStore(ctx, 1, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(2), movs[0].ID, "el ID 1 quedó consumido por la tx abortada")
}

func TestDeleteDirectoEliminaDelHistorial(t *testing.T) {
	store := memory.NewLedgerStore()
	movRepo := memory.NewStockMovementRepository(store)
	ctx := context.Background()

	err := movRepo.Create(ctx, &entity.StockMovement{StoreID: 1, ProductID: 1, QuantityChange: 4, Type: entity.MovementTypeStockIn})
	require.NoError(t, err)
	movs, err := movRepo.ListByStore(ctx, 1, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	id := movs[0].ID

	require.NoError(t, movRepo.Delete(ctx, id))

	movs, err = movRepo.ListByStore(ctx, 1, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)

	assert.ErrorIs(t, movRepo.Delete(ctx, id), domain.ErrNotFound)
}
