package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

var _ repository.CrewStockRepository = (*CrewStockRepo)(nil)

// CrewStockRepo implementación de los totales por cuadrilla sobre PostgreSQL (usable con pool o tx).
type CrewStockRepo struct {
	q Querier
}

// NewCrewStockRepository construye el adaptador de totales por cuadrilla. Pasar pool o tx (Querier).
func NewCrewStockRepository(q Querier) *CrewStockRepo {
	return &CrewStockRepo{q: q}
}

const crewStockColumns = `crew_id, item_id, quantity, updated_at`

// Get obtiene el total de un ítem en poder de una cuadrilla. Devuelve nil si no hay fila.
func (r *CrewStockRepo) Get(crewID, itemID string) (*entity.CrewStock, error) {
	return r.get(crewID, itemID, false)
}

// GetForUpdate bloquea la fila del total (SELECT FOR UPDATE). Si no hay fila
// devuelve una en cero lista para Upsert: el orquestador opera sobre ella directo.
func (r *CrewStockRepo) GetForUpdate(crewID, itemID string) (*entity.CrewStock, error) {
	cs, err := r.get(crewID, itemID, true)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		cs = &entity.CrewStock{CrewID: crewID, ItemID: itemID, Quantity: decimal.Zero}
	}
	return cs, nil
}

func (r *CrewStockRepo) get(crewID, itemID string, forUpdate bool) (*entity.CrewStock, error) {
	query := `SELECT ` + crewStockColumns + ` FROM crew_stock WHERE crew_id = $1 AND item_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.CrewStock
	err := r.q.QueryRow(context.Background(), query, crewID, itemID).Scan(
		&s.CrewID, &s.ItemID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crew stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el total de un ítem para una cuadrilla.
func (r *CrewStockRepo) Upsert(stock *entity.CrewStock) error {
	query := `
		INSERT INTO crew_stock (crew_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (crew_id, item_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		stock.CrewID, stock.ItemID, stock.Quantity, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert crew stock: %w", err)
	}
	return nil
}

// ListByCrew lista los totales de todos los ítems en poder de una cuadrilla.
func (r *CrewStockRepo) ListByCrew(crewID string) ([]*entity.CrewStock, error) {
	query := `SELECT ` + crewStockColumns + ` FROM crew_stock WHERE crew_id = $1 ORDER BY item_id`
	return r.list(query, crewID)
}

// ListByItem lista qué cuadrillas tienen stock de un ítem.
func (r *CrewStockRepo) ListByItem(itemID string) ([]*entity.CrewStock, error) {
	query := `SELECT ` + crewStockColumns + ` FROM crew_stock WHERE item_id = $1 ORDER BY crew_id`
	return r.list(query, itemID)
}

func (r *CrewStockRepo) list(query string, arg any) ([]*entity.CrewStock, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list crew stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.CrewStock
	for rows.Next() {
		var s entity.CrewStock
		if err := rows.Scan(&s.CrewID, &s.ItemID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan crew stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
