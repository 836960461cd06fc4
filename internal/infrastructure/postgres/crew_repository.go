package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

var _ repository.CrewRepository = (*CrewRepo)(nil)

// CrewRepo implementación del puerto CrewRepository sobre PostgreSQL (usable con pool o tx).
type CrewRepo struct {
	q Querier
}

// NewCrewRepository construye el adaptador de persistencia para cuadrillas. Pasar pool o tx (Querier).
func NewCrewRepository(q Querier) *CrewRepo {
	return &CrewRepo{q: q}
}

const crewColumns = `id, name, leader, phone, active, created_at, updated_at`

// Create persiste una nueva cuadrilla.
func (r *CrewRepo) Create(crew *entity.Crew) error {
	if crew.ID == "" {
		crew.ID = uuid.New().String()
	}
	query := `
		INSERT INTO crews (id, name, leader, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		crew.ID, crew.Name, crew.Leader, crew.Phone, crew.Active, crew.CreatedAt, crew.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert crew: %w", err)
	}
	return nil
}

// GetByID obtiene una cuadrilla por ID.
func (r *CrewRepo) GetByID(id string) (*entity.Crew, error) {
	query := `SELECT ` + crewColumns + ` FROM crews WHERE id = $1`
	var c entity.Crew
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Leader, &c.Phone, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crew: %w", err)
	}
	return &c, nil
}

// List lista cuadrillas ordenadas por nombre. limit <= 0 devuelve todo.
func (r *CrewRepo) List(limit, offset int) ([]*entity.Crew, error) {
	query := `SELECT ` + crewColumns + ` FROM crews ORDER BY name`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list crews: %w", err)
	}
	defer rows.Close()
	var list []*entity.Crew
	for rows.Next() {
		var c entity.Crew
		if err := rows.Scan(&c.ID, &c.Name, &c.Leader, &c.Phone, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan crew: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de la cuadrilla.
func (r *CrewRepo) Update(crew *entity.Crew) error {
	query := `
		UPDATE crews SET name = $2, leader = $3, phone = $4, active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		crew.ID, crew.Name, crew.Leader, crew.Phone, crew.Active, crew.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update crew: %w", err)
	}
	return nil
}

// Delete elimina una cuadrilla por ID.
func (r *CrewRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM crews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete crew: %w", err)
	}
	return nil
}
