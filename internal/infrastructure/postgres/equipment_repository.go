package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación del puerto EquipmentRepository sobre PostgreSQL (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador de persistencia para equipos. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `id, item_id, unique_id, serial, mac, status, assigned_crew_id, assigned_at, installed_order_id, installed_at, location_note, notes, created_at, updated_at`

// CreateBatch inserta un lote de equipos. Falla completo si algún unique_id ya existe.
func (r *EquipmentRepo) CreateBatch(instances []*entity.EquipmentInstance) error {
	query := `
		INSERT INTO equipment_instances (id, item_id, unique_id, serial, mac, status, assigned_crew_id, assigned_at, installed_order_id, installed_at, location_note, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, inst := range instances {
		if inst.ID == "" {
			inst.ID = uuid.New().String()
		}
		crewID, assignedAt, orderID, installedAt, locationNote := flattenInstance(inst)
		_, err := r.q.Exec(context.Background(), query,
			inst.ID, inst.ItemID, inst.UniqueID, inst.Serial, inst.MAC, inst.Status,
			crewID, assignedAt, orderID, installedAt, locationNote,
			inst.Notes, inst.CreatedAt, inst.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", domain.ErrDuplicateUniqueID, inst.UniqueID)
			}
			return fmt.Errorf("insert equipment instance: %w", err)
		}
	}
	return nil
}

// GetByUniqueID obtiene un equipo por su identificador de negocio (case-insensitive).
func (r *EquipmentRepo) GetByUniqueID(uniqueID string) (*entity.EquipmentInstance, error) {
	return r.getByUniqueID(uniqueID, false)
}

// GetByUniqueIDForUpdate bloquea la fila del equipo para el resto de la transacción.
func (r *EquipmentRepo) GetByUniqueIDForUpdate(uniqueID string) (*entity.EquipmentInstance, error) {
	return r.getByUniqueID(uniqueID, true)
}

func (r *EquipmentRepo) getByUniqueID(uniqueID string, forUpdate bool) (*entity.EquipmentInstance, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment_instances WHERE lower(unique_id) = lower($1)`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	return r.scanOne(r.q.QueryRow(context.Background(), query, uniqueID))
}

// Find busca un equipo por unique_id, serial o MAC (exacto, case-insensitive).
// Si varios comparten serial o MAC gana el registrado primero.
func (r *EquipmentRepo) Find(query string) (*entity.EquipmentInstance, error) {
	sql := `SELECT ` + equipmentColumns + ` FROM equipment_instances
		WHERE lower(unique_id) = lower($1) OR lower(serial) = lower($1) OR lower(mac) = lower($1)
		ORDER BY (lower(unique_id) = lower($1)) DESC, created_at
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), sql, query))
}

func (r *EquipmentRepo) scanOne(row pgx.Row) (*entity.EquipmentInstance, error) {
	var e entity.EquipmentInstance
	var crewID, orderID, locationNote *string
	var assignedAt, installedAt *time.Time
	err := row.Scan(
		&e.ID, &e.ItemID, &e.UniqueID, &e.Serial, &e.MAC, &e.Status,
		&crewID, &assignedAt, &orderID, &installedAt, &locationNote,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment instance: %w", err)
	}
	hydrateInstance(&e, crewID, assignedAt, orderID, installedAt, locationNote)
	return &e, nil
}

// List lista equipos filtrando opcionalmente por ítem y estado.
func (r *EquipmentRepo) List(itemID, status string) ([]*entity.EquipmentInstance, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment_instances WHERE 1=1`
	args := []any{}
	pos := 1
	if itemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, itemID)
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment instances: %w", err)
	}
	defer rows.Close()
	var list []*entity.EquipmentInstance
	for rows.Next() {
		var e entity.EquipmentInstance
		var crewID, orderID, locationNote *string
		var assignedAt, installedAt *time.Time
		if err := rows.Scan(&e.ID, &e.ItemID, &e.UniqueID, &e.Serial, &e.MAC, &e.Status,
			&crewID, &assignedAt, &orderID, &installedAt, &locationNote,
			&e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment instance: %w", err)
		}
		hydrateInstance(&e, crewID, assignedAt, orderID, installedAt, locationNote)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// CountByItem cuenta los equipos registrados de un ítem.
func (r *EquipmentRepo) CountByItem(itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM equipment_instances WHERE item_id = $1`, itemID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count equipment: %w", err)
	}
	return n, nil
}

// CountByItemAndStatus cuenta los equipos de un ítem en un estado dado.
func (r *EquipmentRepo) CountByItemAndStatus(itemID, status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM equipment_instances WHERE item_id = $1 AND status = $2`, itemID, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count equipment by status: %w", err)
	}
	return n, nil
}

// Update persiste estado, asignación, instalación y notas del equipo.
func (r *EquipmentRepo) Update(instance *entity.EquipmentInstance) error {
	crewID, assignedAt, orderID, installedAt, locationNote := flattenInstance(instance)
	query := `
		UPDATE equipment_instances
		SET status = $2, assigned_crew_id = $3, assigned_at = $4, installed_order_id = $5, installed_at = $6, location_note = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		instance.ID, instance.Status, crewID, assignedAt, orderID, installedAt, locationNote,
		instance.Notes, instance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update equipment instance: %w", err)
	}
	return nil
}

// Delete elimina un equipo por su identificador de negocio.
func (r *EquipmentRepo) Delete(uniqueID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM equipment_instances WHERE lower(unique_id) = lower($1)`, uniqueID)
	if err != nil {
		return fmt.Errorf("delete equipment instance: %w", err)
	}
	return nil
}

// flattenInstance aplana AssignedTo/InstalledAt a columnas nullable.
func flattenInstance(e *entity.EquipmentInstance) (crewID *string, assignedAt *time.Time, orderID *string, installedAt *time.Time, locationNote *string) {
	if e.AssignedTo != nil {
		crewID = &e.AssignedTo.CrewID
		assignedAt = &e.AssignedTo.AssignedAt
	}
	if e.InstalledAt != nil {
		orderID = &e.InstalledAt.OrderID
		installedAt = &e.InstalledAt.InstalledAt
		locationNote = &e.InstalledAt.LocationNote
	}
	return
}

// hydrateInstance reconstruye AssignedTo/InstalledAt desde columnas nullable.
func hydrateInstance(e *entity.EquipmentInstance, crewID *string, assignedAt *time.Time, orderID *string, installedAt *time.Time, locationNote *string) {
	if crewID != nil && assignedAt != nil {
		e.AssignedTo = &entity.InstanceAssignment{CrewID: *crewID, AssignedAt: *assignedAt}
	}
	if orderID != nil && installedAt != nil {
		inst := &entity.InstanceInstallation{OrderID: *orderID, InstalledAt: *installedAt}
		if locationNote != nil {
			inst.LocationNote = *locationNote
		}
		e.InstalledAt = inst
	}
}
