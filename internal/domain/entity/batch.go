package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados y ubicaciones de una bobina (lote parcialmente consumible).
const (
	BatchStatusActive   = "active"
	BatchStatusDepleted = "depleted"

	BatchLocationWarehouse = "warehouse"
	BatchLocationCrew      = "crew"
)

// Batch representa una bobina: un lote discreto identificado por código (ej. un
// carrete de cable) que se mueve completo entre almacén y cuadrilla pero se
// consume por cantidad. CrewID está presente si y solo si Location es crew.
type Batch struct {
	ID          string
	Code        string // código de bobina asignado por bodega, único
	ItemID      string
	InitialQty  decimal.Decimal
	CurrentQty  decimal.Decimal
	Unit        string
	Status      string // active, depleted
	Location    string // warehouse, crew
	CrewID      *string
	AcquiredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Depleted indica si la bobina quedó en cero.
func (b *Batch) Depleted() bool {
	return b.CurrentQty.IsZero()
}

// RecomputeStatus recalcula Status a partir de CurrentQty.
func (b *Batch) RecomputeStatus() {
	if b.CurrentQty.IsZero() {
		b.Status = BatchStatusDepleted
	} else {
		b.Status = BatchStatusActive
	}
}

// AtWarehouse indica si la bobina está en almacén.
func (b *Batch) AtWarehouse() bool {
	return b.Location == BatchLocationWarehouse
}
