package usecase

import (
	"context"

	"github.com/tu-usuario/bazar-api/internal/application/dto"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

// ManagerUseCase casos de uso CRUD para encargados.
type ManagerUseCase struct {
	repo repository.ManagerRepository
}

// NewManagerUseCase construye el caso de uso.
func NewManagerUseCase(repo repository.ManagerRepository) *ManagerUseCase {
	return &ManagerUseCase{repo: repo}
}

// Create crea un encargado.
func (uc *ManagerUseCase) Create(ctx context.Context, in dto.CreateManagerRequest) (*dto.ManagerResponse, error) {
	manager := &entity.Manager{Name: in.Name}
	if err := uc.repo.Create(ctx, manager); err != nil {
		return nil, err
	}
	return toManagerResponse(manager), nil
}

// GetByID obtiene un encargado por ID; nil si no existe.
func (uc *ManagerUseCase) GetByID(ctx context.Context, id int64) (*dto.ManagerResponse, error) {
	manager, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, nil
	}
	return toManagerResponse(manager), nil
}

// List lista encargados con paginación.
func (uc *ManagerUseCase) List(ctx context.Context, limit, offset int) (*dto.ManagerListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ManagerResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toManagerResponse(m))
	}
	return &dto.ManagerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un encargado por ID.
func (uc *ManagerUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toManagerResponse(m *entity.Manager) *dto.ManagerResponse {
	return &dto.ManagerResponse{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}
