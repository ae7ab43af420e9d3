package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
)

var _ repository.ManagerRepository = (*ManagerRepo)(nil)

// ManagerRepo implementación de ManagerRepository sobre PostgreSQL.
type ManagerRepo struct {
	q Querier
}

// NewManagerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManagerRepository(q Querier) *ManagerRepo {
	return &ManagerRepo{q: q}
}

func (r *ManagerRepo) Create(ctx context.Context, manager *entity.Manager) error {
	query := `INSERT INTO managers (name, created_at) VALUES ($1, now()) RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, manager.Name).Scan(&manager.ID, &manager.CreatedAt); err != nil {
		return fmt.Errorf("create manager: %w", err)
	}
	return nil
}

func (r *ManagerRepo) GetByID(ctx context.Context, id int64) (*entity.Manager, error) {
	var m entity.Manager
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM managers WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manager: %w", err)
	}
	return &m, nil
}

func (r *ManagerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Manager, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM managers ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Manager
	for rows.Next() {
		var m entity.Manager
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan manager: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *ManagerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM managers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete manager: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
