// Package memory implementa los almacenes del ledger sobre mapas en memoria.
// Sirve como modo demo sin base de datos y como backend de los tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

type stockKey struct {
	storeID   int64
	productID int64
}

// LedgerStore agrupa el estado del ledger: stock por pareja tienda+producto y el
// historial append-only. El mutex único hace el papel del lock de fila de
// PostgreSQL: las transacciones se serializan completas.
type LedgerStore struct {
	mu        sync.RWMutex
	stocks    map[stockKey]entity.Stock
	movements []entity.StockMovement
	nextID    int64
}

// NewLedgerStore crea el estado vacío.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{stocks: make(map[stockKey]entity.Stock), nextID: 1}
}

// --- operaciones con el lock ya tomado ---

func (s *LedgerStore) getLocked(storeID, productID int64) *entity.Stock {
	st, ok := s.stocks[stockKey{storeID, productID}]
	if !ok {
		return nil
	}
	cp := st
	return &cp
}

func (s *LedgerStore) applyDeltaLocked(storeID, productID, delta int64) (*entity.Stock, error) {
	k := stockKey{storeID, productID}
	cur, exists := s.stocks[k]
	newQty := delta
	if exists {
		newQty = cur.Quantity + delta
	}
	if newQty < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	st := entity.Stock{StoreID: storeID, ProductID: productID, Quantity: newQty, UpdatedAt: time.Now()}
	s.stocks[k] = st
	cp := st
	return &cp, nil
}

func (s *LedgerStore) appendLocked(m *entity.StockMovement) {
	m.ID = s.nextID
	s.nextID++
	s.movements = append(s.movements, *m)
}

func (s *LedgerStore) listStockLocked(storeID int64, limit, offset int) []*entity.Stock {
	var list []*entity.Stock
	for k, st := range s.stocks {
		if k.storeID == storeID {
			cp := st
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return paginate(list, limit, offset)
}

func (s *LedgerStore) listMovementsLocked(storeID int64, f repository.MovementFilter) []*entity.StockMovement {
	var list []*entity.StockMovement
	for i := range s.movements {
		m := s.movements[i]
		if m.StoreID != storeID {
			continue
		}
		if f.ProductID != nil && m.ProductID != *f.ProductID {
			continue
		}
		if f.From != nil && m.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && m.Timestamp.After(*f.To) {
			continue
		}
		cp := m
		list = append(list, &cp)
	}
	// timestamp ascendente, desempate por ID de inserción
	sort.Slice(list, func(i, j int) bool {
		if list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].ID < list[j].ID
		}
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
	return paginate(list, f.Limit, f.Offset)
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
