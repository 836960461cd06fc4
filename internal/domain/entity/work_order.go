package entity

import "time"

// Estados de una orden de trabajo.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusDone       = "done"
	OrderStatusCancelled  = "cancelled"
)

// WorkOrder es una orden de instalación o reparación en campo. Los movimientos
// USAGE_ORDER y las instalaciones de equipos la referencian.
type WorkOrder struct {
	ID        string
	Code      string // número de orden, único
	Customer  string
	Address   string
	Status    string
	CrewID    *string // cuadrilla asignada, si la hay
	CreatedAt time.Time
	UpdatedAt time.Time
}
