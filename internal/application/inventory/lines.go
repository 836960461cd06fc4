package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/domain"
)

// Line es el tipo sellado de línea de movimiento. Cada variante valida lo suyo
// de forma exhaustiva; una línea nunca lleva a la vez batch_code e instance_ids.
type Line interface {
	isLine()
}

// PlainLine cantidad simple de un ítem, sin bobina ni seriales.
type PlainLine struct {
	ItemID   string
	Quantity decimal.Decimal
}

// BatchLine cantidad referida a una bobina concreta.
type BatchLine struct {
	ItemID    string
	BatchCode string
	Quantity  decimal.Decimal
}

// EquipmentLine conjunto de equipos serializados identificados por UniqueID.
type EquipmentLine struct {
	ItemID      string
	InstanceIDs []string
}

func (PlainLine) isLine()     {}
func (BatchLine) isLine()     {}
func (EquipmentLine) isLine() {}

// linesFromRequest clasifica las líneas del request HTTP en sus variantes.
func linesFromRequest(items []dto.MovementLineRequest) ([]Line, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		if it.ItemID == "" {
			return nil, domain.ErrInvalidInput
		}
		switch {
		case it.BatchCode != "" && len(it.InstanceIDs) > 0:
			return nil, domain.ErrInvalidInput
		case len(it.InstanceIDs) > 0:
			for _, id := range it.InstanceIDs {
				if id == "" {
					return nil, domain.ErrInvalidInput
				}
			}
			lines = append(lines, EquipmentLine{ItemID: it.ItemID, InstanceIDs: it.InstanceIDs})
		case it.BatchCode != "":
			lines = append(lines, BatchLine{ItemID: it.ItemID, BatchCode: it.BatchCode, Quantity: it.Quantity})
		default:
			lines = append(lines, PlainLine{ItemID: it.ItemID, Quantity: it.Quantity})
		}
	}
	return lines, nil
}
