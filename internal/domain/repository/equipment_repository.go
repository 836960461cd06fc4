package repository

import "github.com/dvergaras/fieldops-api/internal/domain/entity"

// EquipmentRepository define el puerto de persistencia para equipos serializados.
type EquipmentRepository interface {
	CreateBatch(instances []*entity.EquipmentInstance) error
	GetByUniqueID(uniqueID string) (*entity.EquipmentInstance, error)
	// GetByUniqueIDForUpdate bloquea la fila del equipo (SELECT FOR UPDATE).
	GetByUniqueIDForUpdate(uniqueID string) (*entity.EquipmentInstance, error)
	// Find busca por uniqueID, serial o MAC, exacto case-insensitive; el match
	// más antiguo si hay varios por serial/MAC.
	Find(query string) (*entity.EquipmentInstance, error)
	List(itemID, status string) ([]*entity.EquipmentInstance, error)
	CountByItem(itemID string) (int, error)
	CountByItemAndStatus(itemID, status string) (int, error)
	Update(instance *entity.EquipmentInstance) error
	Delete(uniqueID string) error
}
