package repository

import "github.com/dvergaras/fieldops-api/internal/domain/entity"

// CrewRepository define el puerto de persistencia para cuadrillas.
type CrewRepository interface {
	Create(crew *entity.Crew) error
	GetByID(id string) (*entity.Crew, error)
	List(limit, offset int) ([]*entity.Crew, error)
	Update(crew *entity.Crew) error
	Delete(id string) error
}

// CrewStockRepository mantiene los totales desnormalizados por cuadrilla e ítem.
// Solo el orquestador de movimientos escribe aquí, dentro de su transacción.
type CrewStockRepository interface {
	Get(crewID, itemID string) (*entity.CrewStock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); devuelve cero si no existe.
	GetForUpdate(crewID, itemID string) (*entity.CrewStock, error)
	Upsert(stock *entity.CrewStock) error
	ListByCrew(crewID string) ([]*entity.CrewStock, error)
	ListByItem(itemID string) ([]*entity.CrewStock, error)
}
