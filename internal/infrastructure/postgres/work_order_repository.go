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

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const orderColumns = `id, code, customer, address, status, crew_id, created_at, updated_at`

// Create persiste una nueva orden de trabajo.
func (r *WorkOrderRepo) Create(order *entity.WorkOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO work_orders (id, code, customer, address, status, crew_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Code, order.Customer, order.Address, order.Status,
		order.CrewID, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	return r.getBy("id = $1", id)
}

// GetByCode obtiene una orden por número (case-insensitive).
func (r *WorkOrderRepo) GetByCode(code string) (*entity.WorkOrder, error) {
	return r.getBy("lower(code) = lower($1)", code)
}

func (r *WorkOrderRepo) getBy(cond string, arg any) (*entity.WorkOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM work_orders WHERE ` + cond
	var o entity.WorkOrder
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.Code, &o.Customer, &o.Address, &o.Status, &o.CrewID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return &o, nil
}

// List lista órdenes, opcionalmente filtradas por estado. limit <= 0 devuelve todo.
func (r *WorkOrderRepo) List(status string, limit, offset int) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM work_orders WHERE 1=1`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrder
	for rows.Next() {
		var o entity.WorkOrder
		if err := rows.Scan(&o.ID, &o.Code, &o.Customer, &o.Address, &o.Status, &o.CrewID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualiza los datos y el estado de la orden.
func (r *WorkOrderRepo) Update(order *entity.WorkOrder) error {
	query := `
		UPDATE work_orders SET customer = $2, address = $3, status = $4, crew_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Customer, order.Address, order.Status, order.CrewID, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	return nil
}
