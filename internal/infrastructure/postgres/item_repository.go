package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, code, type, description, unit, current_stock, min_stock, created_at, updated_at`

// Create persiste un nuevo ítem de catálogo.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, code, type, description, unit, current_stock, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Type, item.Description, item.Unit,
		item.CurrentStock, item.MinStock, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.getBy("id = $1", id)
}

// GetByCode obtiene un ítem por código de catálogo (case-insensitive).
func (r *ItemRepo) GetByCode(code string) (*entity.InventoryItem, error) {
	return r.getBy("lower(code) = lower($1)", code)
}

func (r *ItemRepo) getBy(cond string, arg any) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE ` + cond
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&i.ID, &i.Code, &i.Type, &i.Description, &i.Unit,
		&i.CurrentStock, &i.MinStock, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// GetForUpdate bloquea la fila del ítem para el resto de la transacción.
func (r *ItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	var i entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Code, &i.Type, &i.Description, &i.Unit,
		&i.CurrentStock, &i.MinStock, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return &i, nil
}

// List lista ítems de catálogo ordenados por código. limit <= 0 devuelve todo.
func (r *ItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY code`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListLowStock lista los ítems por debajo de su umbral mínimo.
func (r *ItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE current_stock < min_stock ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		if err := rows.Scan(&i.ID, &i.Code, &i.Type, &i.Description, &i.Unit,
			&i.CurrentStock, &i.MinStock, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del ítem. CurrentStock no se escribe aquí
// (solo vía SetStock, dentro de la transacción del orquestador).
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE items SET description = $2, type = $3, unit = $4, min_stock = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Description, item.Type, item.Unit, item.MinStock, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// SetStock escribe el stock agregado del ítem.
func (r *ItemRepo) SetStock(id string, qty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("set item stock: %w", err)
	}
	return nil
}

// Delete elimina un ítem por ID.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
