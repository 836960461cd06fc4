package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ítem de inventario.
const (
	ItemTypeMaterial  = "material"  // consumible por cantidad (cable, conectores)
	ItemTypeEquipment = "equipment" // unidades serializadas (ONTs, routers)
	ItemTypeTool      = "tool"      // herramienta de cuadrilla
)

// InventoryItem es el ítem maestro del catálogo. CurrentStock es el stock agregado
// en almacén (incluye la cantidad de las bobinas ubicadas en almacén) y solo lo
// muta el orquestador de movimientos; nunca se edita directo.
type InventoryItem struct {
	ID           string
	Code         string // código único de catálogo (ej. CAB-001)
	Type         string // material, equipment, tool
	Description  string
	Unit         string // metros, unidades, cajas...
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal // umbral de alerta de stock bajo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el ítem está por debajo de su umbral mínimo.
func (i *InventoryItem) LowStock() bool {
	return i.CurrentStock.LessThan(i.MinStock)
}
