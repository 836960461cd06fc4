package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para el catálogo de ítems.
// Usado dentro de transacciones para garantizar consistencia del stock.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByCode(code string) (*entity.InventoryItem, error)
	List(limit, offset int) ([]*entity.InventoryItem, error)
	ListLowStock() ([]*entity.InventoryItem, error)
	// Update persiste los campos editables (descripción, tipo, unidad, mínimo).
	// CurrentStock nunca se escribe por esta vía.
	Update(item *entity.InventoryItem) error
	// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.InventoryItem, error)
	// SetStock escribe el stock agregado; solo el orquestador lo invoca.
	SetStock(id string, qty decimal.Decimal) error
	Delete(id string) error
}
