package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// Balances acumula, para un ítem, el stock de almacén y los totales por
// cuadrilla que se derivan de reproducir el libro de movimientos. Los tests de
// conciliación lo comparan contra los snapshots desnormalizados.
type Balances struct {
	Warehouse decimal.Decimal
	ByCrew    map[string]decimal.Decimal
}

// NewBalances crea un acumulador en cero.
func NewBalances() *Balances {
	return &Balances{Warehouse: decimal.Zero, ByCrew: map[string]decimal.Decimal{}}
}

// Apply reproduce un movimiento sobre los balances según la convención de signo
// documentada en entity.Movement.
func (b *Balances) Apply(m *entity.Movement) {
	switch m.Type {
	case entity.MovementTypeEntry:
		b.Warehouse = b.Warehouse.Add(m.Quantity)
	case entity.MovementTypeAssignment:
		// delta negativo: sale de almacén, entra a la cuadrilla
		b.Warehouse = b.Warehouse.Add(m.Quantity)
		if m.CrewID != nil {
			b.ByCrew[*m.CrewID] = b.crew(*m.CrewID).Sub(m.Quantity)
		}
	case entity.MovementTypeReturn:
		// delta positivo: vuelve a almacén, sale de la cuadrilla
		b.Warehouse = b.Warehouse.Add(m.Quantity)
		if m.CrewID != nil {
			b.ByCrew[*m.CrewID] = b.crew(*m.CrewID).Sub(m.Quantity)
		}
	case entity.MovementTypeUsageOrder:
		// delta negativo: se consume del stock de la cuadrilla
		if m.CrewID != nil {
			b.ByCrew[*m.CrewID] = b.crew(*m.CrewID).Add(m.Quantity)
		}
	case entity.MovementTypeAdjustment:
		if m.CrewID != nil {
			b.ByCrew[*m.CrewID] = b.crew(*m.CrewID).Add(m.Quantity)
		} else {
			b.Warehouse = b.Warehouse.Add(m.Quantity)
		}
	}
}

// Replay reproduce una secuencia completa (en cualquier orden: los deltas conmutan).
func Replay(movements []*entity.Movement) *Balances {
	b := NewBalances()
	for _, m := range movements {
		b.Apply(m)
	}
	return b
}

// Crew devuelve el total acumulado de una cuadrilla.
func (b *Balances) Crew(crewID string) decimal.Decimal {
	return b.crew(crewID)
}

func (b *Balances) crew(crewID string) decimal.Decimal {
	if q, ok := b.ByCrew[crewID]; ok {
		return q
	}
	return decimal.Zero
}
