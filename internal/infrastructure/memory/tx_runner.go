package memory

import (
	"context"

	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner emula la transacción de BD: toma el lock del LedgerStore durante todo
// el callback y deshace las escrituras (journal) si fn devuelve error o el ctx se
// cancela antes de confirmar. Tras el "commit" (liberar el lock sin rollback) el
// cambio queda, cancele o no el caller después.
type TxRunner struct {
	s *LedgerStore
}

// NewTxRunner construye el runner sobre el estado en memoria.
func NewTxRunner(s *LedgerStore) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos atados a la "transacción".
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j := &journal{s: r.s, movLen: len(r.s.movements)}
	stockRepo := &txStockRepo{s: r.s, j: j}
	movRepo := &txMovementRepo{s: r.s}

	if err := fn(stockRepo, movRepo); err != nil {
		j.rollback()
		return err
	}
	if err := ctx.Err(); err != nil {
		// cancelado antes del commit: ningún efecto visible
		j.rollback()
		return err
	}
	return nil
}

// journal guarda el estado previo de las filas tocadas para poder deshacer.
// Los IDs de movimiento consumidos por una tx abortada no se reutilizan, igual
// que un BIGSERIAL.
type journal struct {
	s      *LedgerStore
	movLen int
	prev   map[stockKey]*entity.Stock // nil = la fila no existía
}

func (j *journal) saveStock(k stockKey) {
	if j.prev == nil {
		j.prev = make(map[stockKey]*entity.Stock)
	}
	if _, saved := j.prev[k]; saved {
		return
	}
	if cur, ok := j.s.stocks[k]; ok {
		cp := cur
		j.prev[k] = &cp
	} else {
		j.prev[k] = nil
	}
}

func (j *journal) rollback() {
	for k, prev := range j.prev {
		if prev == nil {
			delete(j.s.stocks, k)
		} else {
			j.s.stocks[k] = *prev
		}
	}
	j.s.movements = j.s.movements[:j.movLen]
}

// txStockRepo opera sobre el estado con el lock ya tomado por el TxRunner.
type txStockRepo struct {
	s *LedgerStore
	j *journal
}

func (r *txStockRepo) Get(_ context.Context, storeID, productID int64) (*entity.Stock, error) {
	return r.s.getLocked(storeID, productID), nil
}

func (r *txStockRepo) GetForUpdate(_ context.Context, storeID, productID int64) (*entity.Stock, error) {
	return r.s.getLocked(storeID, productID), nil
}

func (r *txStockRepo) ApplyDelta(_ context.Context, storeID, productID, delta int64) (*entity.Stock, error) {
	r.j.saveStock(stockKey{storeID, productID})
	return r.s.applyDeltaLocked(storeID, productID, delta)
}

func (r *txStockRepo) ListByStore(_ context.Context, storeID int64, limit, offset int) ([]*entity.Stock, error) {
	return r.s.listStockLocked(storeID, limit, offset), nil
}

// txMovementRepo: el rollback del historial lo cubre el truncado del journal.
type txMovementRepo struct {
	s *LedgerStore
}

func (r *txMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.appendLocked(m)
	return nil
}

func (r *txMovementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			cp := r.s.movements[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *txMovementRepo) ListByStore(_ context.Context, storeID int64, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.s.listMovementsLocked(storeID, f), nil
}

// Delete no se ofrece dentro de una transacción del ledger: la override
// administrativa va por el repo directo.
func (r *txMovementRepo) Delete(context.Context, int64) error {
	return domain.ErrInvalidInput
}
