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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de persistencia para bobinas. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, code, item_id, initial_qty, current_qty, unit, status, location, crew_id, acquired_at, created_at, updated_at`

// Create persiste una nueva bobina.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batches (id, code, item_id, initial_qty, current_qty, unit, status, location, crew_id, acquired_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Code, batch.ItemID, batch.InitialQty, batch.CurrentQty,
		batch.Unit, batch.Status, batch.Location, batch.CrewID, batch.AcquiredAt,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBatchCode
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByCode obtiene una bobina por código (case-insensitive).
func (r *BatchRepo) GetByCode(code string) (*entity.Batch, error) {
	return r.getByCode(code, false)
}

// GetByCodeForUpdate bloquea la fila de la bobina para el resto de la transacción.
func (r *BatchRepo) GetByCodeForUpdate(code string) (*entity.Batch, error) {
	return r.getByCode(code, true)
}

func (r *BatchRepo) getByCode(code string, forUpdate bool) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE lower(code) = lower($1)`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&b.ID, &b.Code, &b.ItemID, &b.InitialQty, &b.CurrentQty, &b.Unit,
		&b.Status, &b.Location, &b.CrewID, &b.AcquiredAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// ListByItem lista las bobinas de un ítem, activas primero.
func (r *BatchRepo) ListByItem(itemID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE item_id = $1 ORDER BY status, acquired_at`
	return r.list(query, itemID)
}

// ListByCrew lista las bobinas en poder de una cuadrilla.
func (r *BatchRepo) ListByCrew(crewID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE crew_id = $1 ORDER BY acquired_at`
	return r.list(query, crewID)
}

func (r *BatchRepo) list(query string, arg any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.Code, &b.ItemID, &b.InitialQty, &b.CurrentQty, &b.Unit,
			&b.Status, &b.Location, &b.CrewID, &b.AcquiredAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update persiste cantidad, estado, ubicación y cuadrilla de la bobina.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches SET item_id = $2, initial_qty = $3, current_qty = $4, status = $5, location = $6, crew_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ItemID, batch.InitialQty, batch.CurrentQty,
		batch.Status, batch.Location, batch.CrewID, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// Delete elimina una bobina por código.
func (r *BatchRepo) Delete(code string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE lower(code) = lower($1)`, code)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// DeleteByItem elimina todas las bobinas de un ítem (borrado en cascada del catálogo).
func (r *BatchRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete batches by item: %w", err)
	}
	return nil
}
