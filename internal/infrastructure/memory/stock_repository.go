package memory

import (
	"context"

	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)
var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockRepo adaptador directo (sin transacción) sobre LedgerStore, equivalente a
// un repo atado al pool. Para escrituras transaccionales usar TxRunner.
type StockRepo struct {
	s *LedgerStore
}

// NewStockRepository construye el adaptador de lecturas/escrituras directas.
func NewStockRepository(s *LedgerStore) *StockRepo {
	return &StockRepo{s: s}
}

func (r *StockRepo) Get(_ context.Context, storeID, productID int64) (*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.getLocked(storeID, productID), nil
}

// GetForUpdate fuera de una tx no bloquea nada extra: el mutex global ya
// serializa; se mantiene por contrato del puerto.
func (r *StockRepo) GetForUpdate(_ context.Context, storeID, productID int64) (*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.getLocked(storeID, productID), nil
}

func (r *StockRepo) ApplyDelta(_ context.Context, storeID, productID, delta int64) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.applyDeltaLocked(storeID, productID, delta)
}

func (r *StockRepo) ListByStore(_ context.Context, storeID int64, limit, offset int) ([]*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.listStockLocked(storeID, limit, offset), nil
}

// StockMovementRepo adaptador directo del historial sobre LedgerStore.
type StockMovementRepo struct {
	s *LedgerStore
}

// NewStockMovementRepository construye el adaptador del historial.
func NewStockMovementRepository(s *LedgerStore) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.appendLocked(m)
	return nil
}

func (r *StockMovementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			cp := r.s.movements[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *StockMovementRepo) ListByStore(_ context.Context, storeID int64, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.listMovementsLocked(storeID, f), nil
}

// Delete override administrativa; no forma parte del contrato del ledger.
func (r *StockMovementRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			r.s.movements = append(r.s.movements[:i], r.s.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
