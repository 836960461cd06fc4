package repository

import "github.com/dvergaras/fieldops-api/internal/domain/entity"

// WorkOrderRepository define el puerto de persistencia para órdenes de trabajo.
type WorkOrderRepository interface {
	Create(order *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	GetByCode(code string) (*entity.WorkOrder, error)
	List(status string, limit, offset int) ([]*entity.WorkOrder, error)
	Update(order *entity.WorkOrder) error
}
