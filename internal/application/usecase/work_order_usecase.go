package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

var validOrderStatus = map[string]bool{
	entity.OrderStatusPending:    true,
	entity.OrderStatusInProgress: true,
	entity.OrderStatusDone:       true,
	entity.OrderStatusCancelled:  true,
}

// WorkOrderUseCase CRUD de órdenes de trabajo y proyección de consumo.
type WorkOrderUseCase struct {
	orderRepo repository.WorkOrderRepository
	movRepo   repository.MovementRepository
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(orderRepo repository.WorkOrderRepository, movRepo repository.MovementRepository) *WorkOrderUseCase {
	return &WorkOrderUseCase{orderRepo: orderRepo, movRepo: movRepo}
}

// Create da de alta una orden en estado pending.
func (uc *WorkOrderUseCase) Create(in dto.CreateOrderRequest) (*entity.WorkOrder, error) {
	if in.Code == "" || in.Customer == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.WorkOrder{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Customer:  in.Customer,
		Address:   in.Address,
		Status:    entity.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.CrewID != "" {
		crewID := in.CrewID
		order.CrewID = &crewID
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID obtiene una orden.
func (uc *WorkOrderUseCase) GetByID(id string) (*entity.WorkOrder, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *WorkOrderUseCase) List(status string, limit, offset int) ([]*entity.WorkOrder, error) {
	if status != "" && !validOrderStatus[status] {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.List(status, limit, offset)
}

// Update edita la orden (cliente, dirección, estado, cuadrilla).
func (uc *WorkOrderUseCase) Update(id string, in dto.UpdateOrderRequest) (*entity.WorkOrder, error) {
	order, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Customer != nil {
		order.Customer = *in.Customer
	}
	if in.Address != nil {
		order.Address = *in.Address
	}
	if in.Status != "" {
		if !validOrderStatus[in.Status] {
			return nil, domain.ErrInvalidInput
		}
		order.Status = in.Status
	}
	if in.CrewID != nil {
		if *in.CrewID == "" {
			order.CrewID = nil
		} else {
			order.CrewID = in.CrewID
		}
	}
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Usage devuelve los movimientos de consumo registrados contra la orden.
func (uc *WorkOrderUseCase) Usage(orderID string) ([]*entity.Movement, error) {
	if _, err := uc.GetByID(orderID); err != nil {
		return nil, err
	}
	return uc.movRepo.List(repository.MovementFilter{OrderID: orderID, Limit: 500})
}
