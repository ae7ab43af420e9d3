package repository

import (
	"context"

	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

// ManagerRepository define el puerto de persistencia para Manager (DIP).
type ManagerRepository interface {
	Create(ctx context.Context, manager *entity.Manager) error
	GetByID(ctx context.Context, id int64) (*entity.Manager, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Manager, error)
	Delete(ctx context.Context, id int64) error
}
