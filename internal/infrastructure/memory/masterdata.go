package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)
var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.VendorRepository = (*VendorRepo)(nil)
var _ repository.ManagerRepository = (*ManagerRepo)(nil)

// MasterData almacena tiendas, productos, proveedores y encargados en memoria.
type MasterData struct {
	mu       sync.RWMutex
	stores   map[int64]entity.Store
	products map[int64]entity.Product
	vendors  map[int64]entity.Vendor
	managers map[int64]entity.Manager
	nextID   int64
}

// NewMasterData crea el almacén maestro vacío.
func NewMasterData() *MasterData {
	return &MasterData{
		stores:   make(map[int64]entity.Store),
		products: make(map[int64]entity.Product),
		vendors:  make(map[int64]entity.Vendor),
		managers: make(map[int64]entity.Manager),
		nextID:   1,
	}
}

func (md *MasterData) issueID() int64 {
	id := md.nextID
	md.nextID++
	return id
}

// StoreRepo adaptador de tiendas sobre MasterData.
type StoreRepo struct{ md *MasterData }

func NewStoreRepository(md *MasterData) *StoreRepo { return &StoreRepo{md: md} }

func (r *StoreRepo) Create(_ context.Context, s *entity.Store) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	s.ID = r.md.issueID()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.md.stores[s.ID] = *s
	return nil
}

func (r *StoreRepo) GetByID(_ context.Context, id int64) (*entity.Store, error) {
	r.md.mu.RLock()
	defer r.md.mu.RUnlock()
	if s, ok := r.md.stores[id]; ok {
		cp := s
		return &cp, nil
	}
	return nil, nil
}

func (r *StoreRepo) Update(_ context.Context, s *entity.Store) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	if _, ok := r.md.stores[s.ID]; !ok {
		return domain.ErrNotFound
	}
	s.UpdatedAt = time.Now()
	r.md.stores[s.ID] = *s
	return nil
}

func (r *StoreRepo) List(_ context.Context, limit, offset int) ([]*entity.Store, error) {
	r.md.mu.RLock()
	defer r.md.mu.RUnlock()
	var list []*entity.Store
	for _, s := range r.md.stores {
		cp := s
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, limit, offset), nil
}

func (r *StoreRepo) Delete(_ context.Context, id int64) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	if _, ok := r.md.stores[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.md.stores, id)
	return nil
}

// ProductRepo adaptador de productos sobre MasterData.
type ProductRepo struct{ md *MasterData }

func NewProductRepository(md *MasterData) *ProductRepo { return &ProductRepo{md: md} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	p.ID = r.md.issueID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.md.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.md.mu.RLock()
	defer r.md.mu.RUnlock()
	if p, ok := r.md.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	if _, ok := r.md.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.md.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.md.mu.RLock()
	defer r.md.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.md.products {
		cp := p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, limit, offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	if _, ok := r.md.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.md.products, id)
	return nil
}

// VendorRepo adaptador de proveedores sobre MasterData.
type VendorRepo struct{ md *MasterData }

func NewVendorRepository(md *MasterData) *VendorRepo { return &VendorRepo{md: md} }

func (r *VendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	v.ID = r.md.issueID()
	v.CreatedAt = time.Now()
	r.md.vendors[v.ID] = *v
	return nil
}

func (r *VendorRepo) GetByID(_ context.Context, id int64) (*entity.Vendor, error) {
	r.md.mu.RLock()
	defer r.md.mu.RUnlock()
	if v, ok := r.md.vendors[id]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}

func (r *VendorRepo) List(_ context.Context, limit, offset int) ([]*entity.Vendor, error) {
	r.md.mu.RLock()
	defer r.md.mu.RUnlock()
	var list []*entity.Vendor
	for _, v := range r.md.vendors {
		cp := v
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, limit, offset), nil
}

func (r *VendorRepo) Delete(_ context.Context, id int64) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	if _, ok := r.md.vendors[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.md.vendors, id)
	return nil
}

// ManagerRepo adaptador de encargados sobre MasterData.
type ManagerRepo struct{ md *MasterData }

func NewManagerRepository(md *MasterData) *ManagerRepo { return &ManagerRepo{md: md} }

func (r *ManagerRepo) Create(_ context.Context, m *entity.Manager) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	m.ID = r.md.issueID()
	m.CreatedAt = time.Now()
	r.md.managers[m.ID] = *m
	return nil
}

func (r *ManagerRepo) GetByID(_ context.Context, id int64) (*entity.Manager, error) {
	r.md.mu.RLock()
	defer r.md.mu.RUnlock()
	if m, ok := r.md.managers[id]; ok {
		cp := m
		return &cp, nil
	}
	return nil, nil
}

func (r *ManagerRepo) List(_ context.Context, limit, offset int) ([]*entity.Manager, error) {
	r.md.mu.RLock()
	defer r.md.mu.RUnlock()
	var list []*entity.Manager
	for _, m := range r.md.managers {
		cp := m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, limit, offset), nil
}

func (r *ManagerRepo) Delete(_ context.Context, id int64) error {
	r.md.mu.Lock()
	defer r.md.mu.Unlock()
	if _, ok := r.md.managers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.md.managers, id)
	return nil
}
