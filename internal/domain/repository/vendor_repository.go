package repository

import (
	"context"

	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

// VendorRepository define el puerto de persistencia para Vendor (DIP).
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id int64) (*entity.Vendor, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Vendor, error)
	Delete(ctx context.Context, id int64) error
}
