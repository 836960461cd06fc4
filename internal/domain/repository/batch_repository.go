package repository

import "github.com/dvergaras/fieldops-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia para bobinas.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByCode(code string) (*entity.Batch, error)
	// GetByCodeForUpdate bloquea la fila de la bobina (SELECT FOR UPDATE).
	GetByCodeForUpdate(code string) (*entity.Batch, error)
	ListByItem(itemID string) ([]*entity.Batch, error)
	ListByCrew(crewID string) ([]*entity.Batch, error)
	Update(batch *entity.Batch) error
	Delete(code string) error
	DeleteByItem(itemID string) error
}
