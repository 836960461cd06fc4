package inventory

import (
	"context"

	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: o todas las mutaciones y filas del libro se confirman, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		batches repository.BatchRepository,
		equipment repository.EquipmentRepository,
		movements repository.MovementRepository,
		crewStock repository.CrewStockRepository,
	) error) error
}

// Actor identifica al usuario que ejecuta la operación. Se pasa explícito en
// cada llamada; el dominio no lee sesión ambiente.
type Actor struct {
	UserID string
	Role   string
}
