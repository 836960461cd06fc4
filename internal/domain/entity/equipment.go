package entity

import "time"

// Estados del ciclo de vida de un equipo serializado.
const (
	InstanceStatusInStock   = "in_stock"
	InstanceStatusAssigned  = "assigned"
	InstanceStatusInstalled = "installed"
	InstanceStatusDamaged   = "damaged"
	InstanceStatusRetired   = "retired"
)

// InstanceAssignment datos de la asignación vigente a una cuadrilla.
type InstanceAssignment struct {
	CrewID     string
	AssignedAt time.Time
}

// InstanceInstallation datos de la instalación en una orden de trabajo.
type InstanceInstallation struct {
	OrderID      string
	InstalledAt  time.Time
	LocationNote string
}

// EquipmentInstance es una unidad serializada no fungible (ONT, router) con
// identificador único de negocio. AssignedTo está poblado solo en assigned,
// InstalledAt solo en installed; en in_stock y estados terminales ambos van
// vacíos (el libro de movimientos conserva la trazabilidad).
type EquipmentInstance struct {
	ID          string
	ItemID      string
	UniqueID    string // identificador de negocio, único global (case-insensitive)
	Serial      *string
	MAC         *string
	Status      string
	AssignedTo  *InstanceAssignment
	InstalledAt *InstanceInstallation
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Terminal indica si el equipo está en un estado final (dañado o retirado).
func (e *EquipmentInstance) Terminal() bool {
	return e.Status == InstanceStatusDamaged || e.Status == InstanceStatusRetired
}
