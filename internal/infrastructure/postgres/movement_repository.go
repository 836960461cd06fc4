package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo append y lectura; la tabla no se actualiza ni se borra.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, type, quantity, reason, crew_id, order_id, batch_code, instance_id, created_by, created_at`

// Append agrega una entrada al libro de movimientos.
func (r *MovementRepo) Append(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, item_id, type, quantity, reason, crew_id, order_id, batch_code, instance_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ItemID, movement.Type, movement.Quantity, movement.Reason,
		movement.CrewID, movement.OrderID, movement.BatchCode, movement.InstanceID,
		movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// List devuelve movimientos filtrados, de más reciente a más antiguo.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	add := func(cond string, arg any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, arg)
		pos++
	}
	if filter.ItemID != "" {
		add("item_id = $%d", filter.ItemID)
	}
	if filter.CrewID != "" {
		add("crew_id = $%d", filter.CrewID)
	}
	if filter.OrderID != "" {
		add("order_id = $%d", filter.OrderID)
	}
	if filter.BatchCode != "" {
		add("lower(batch_code) = lower($%d)", filter.BatchCode)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.Reason,
			&m.CrewID, &m.OrderID, &m.BatchCode, &m.InstanceID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByItem devuelve todos los movimientos de un ítem.
func (r *MovementRepo) ListByItem(itemID string) ([]*entity.Movement, error) {
	return r.List(repository.MovementFilter{ItemID: itemID})
}
