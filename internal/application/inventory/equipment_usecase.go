package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	domaininv "github.com/dvergaras/fieldops-api/internal/domain/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// EquipmentUseCase administra el registro de equipos serializados. El alta y
// las bajas mueven el stock derivado del ítem equipment, así que corren bajo
// el TxRunner. Las transiciones asignar/instalar/devolver van por el
// orquestador de movimientos; aquí solo quedan los estados terminales.
type EquipmentUseCase struct {
	txRunner  TxRunner
	equipRepo repository.EquipmentRepository
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(txRunner TxRunner, equipRepo repository.EquipmentRepository) *EquipmentUseCase {
	return &EquipmentUseCase{txRunner: txRunner, equipRepo: equipRepo}
}

// RegisterInstances crea el lote completo de equipos o nada: cualquier colisión
// de UniqueID (único global, case-insensitive) rechaza toda la llamada. El
// stock del ítem sube en el conteo y queda una fila ENTRY con el total.
func (uc *EquipmentUseCase) RegisterInstances(ctx context.Context, actor Actor, in dto.RegisterInstancesRequest) ([]*entity.EquipmentInstance, error) {
	if in.ItemID == "" || len(in.Instances) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := map[string]bool{}
	for _, ni := range in.Instances {
		if ni.UniqueID == "" {
			return nil, domain.ErrInvalidInput
		}
		key := strings.ToLower(ni.UniqueID)
		if seen[key] {
			return nil, domain.ErrDuplicateUniqueID
		}
		seen[key] = true
	}

	now := time.Now()
	instances := make([]*entity.EquipmentInstance, 0, len(in.Instances))
	for _, ni := range in.Instances {
		inst := &entity.EquipmentInstance{
			ID:        uuid.New().String(),
			ItemID:    in.ItemID,
			UniqueID:  ni.UniqueID,
			Status:    entity.InstanceStatusInStock,
			Notes:     ni.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if ni.Serial != "" {
			serial := ni.Serial
			inst.Serial = &serial
		}
		if ni.MAC != "" {
			mac := ni.MAC
			inst.MAC = &mac
		}
		instances = append(instances, inst)
	}

	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		_ repository.BatchRepository,
		equipment repository.EquipmentRepository,
		movements repository.MovementRepository,
		_ repository.CrewStockRepository,
	) error {
		item, err := items.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Type != entity.ItemTypeEquipment {
			return domain.ErrInvalidInput
		}
		if err := equipment.CreateBatch(instances); err != nil {
			return err
		}
		count := decimal.NewFromInt(int64(len(instances)))
		if err := items.SetStock(item.ID, item.CurrentStock.Add(count)); err != nil {
			return err
		}
		return movements.Append(&entity.Movement{
			ItemID:    item.ID,
			Type:      entity.MovementTypeEntry,
			Quantity:  count,
			Reason:    "registro de equipos",
			CreatedBy: actor.UserID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return instances, nil
}

// FindInstance busca por uniqueID, serial o MAC (exacto, case-insensitive).
func (uc *EquipmentUseCase) FindInstance(query string) (*entity.EquipmentInstance, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	inst, err := uc.equipRepo.Find(query)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, domain.ErrNotFound
	}
	return inst, nil
}

// ListInstances lista los equipos de un ítem, opcionalmente por estado.
func (uc *EquipmentUseCase) ListInstances(itemID, status string) ([]*entity.EquipmentInstance, error) {
	if status != "" && !domaininv.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.equipRepo.List(itemID, status)
}

// MarkUnusable pasa un equipo a damaged o retired (terminales). El conteo del
// que salga (almacén o cuadrilla) se descuenta con una fila ADJUSTMENT.
func (uc *EquipmentUseCase) MarkUnusable(ctx context.Context, actor Actor, uniqueID string, in dto.MarkInstanceRequest) (*entity.EquipmentInstance, error) {
	if in.Status != entity.InstanceStatusDamaged && in.Status != entity.InstanceStatusRetired {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.EquipmentInstance
	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		_ repository.BatchRepository,
		equipment repository.EquipmentRepository,
		movements repository.MovementRepository,
		crewStock repository.CrewStockRepository,
	) error {
		inst, err := equipment.GetByUniqueIDForUpdate(uniqueID)
		if err != nil {
			return err
		}
		if inst == nil {
			return domain.ErrNotFound
		}
		if !domaininv.CanTransition(inst.Status, in.Status) {
			return &domain.InvalidTransitionError{UniqueID: inst.UniqueID, From: inst.Status, To: in.Status}
		}
		item, err := items.GetForUpdate(inst.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		one := decimal.NewFromInt(1)
		mov := &entity.Movement{
			ItemID:    item.ID,
			Type:      entity.MovementTypeAdjustment,
			Quantity:  one.Neg(),
			Reason:    in.Reason,
			CreatedBy: actor.UserID,
			CreatedAt: now,
		}
		uid := inst.UniqueID
		mov.InstanceID = &uid

		switch inst.Status {
		case entity.InstanceStatusInStock:
			if err := items.SetStock(item.ID, item.CurrentStock.Sub(one)); err != nil {
				return err
			}
		case entity.InstanceStatusAssigned:
			cs, err := crewStock.GetForUpdate(inst.AssignedTo.CrewID, item.ID)
			if err != nil {
				return err
			}
			cs.Quantity = cs.Quantity.Sub(one)
			cs.UpdatedAt = now
			if err := crewStock.Upsert(cs); err != nil {
				return err
			}
			crewID := inst.AssignedTo.CrewID
			mov.CrewID = &crewID
		}

		inst.Status = in.Status
		inst.AssignedTo = nil
		inst.InstalledAt = nil
		inst.UpdatedAt = now
		if err := equipment.Update(inst); err != nil {
			return err
		}
		if err := movements.Append(mov); err != nil {
			return err
		}
		result = inst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteInstance borra un equipo; solo se permite desde in_stock. Deja la fila
// ADJUSTMENT que descuenta el conteo del ítem.
func (uc *EquipmentUseCase) DeleteInstance(ctx context.Context, actor Actor, uniqueID string) error {
	return uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		_ repository.BatchRepository,
		equipment repository.EquipmentRepository,
		movements repository.MovementRepository,
		_ repository.CrewStockRepository,
	) error {
		inst, err := equipment.GetByUniqueIDForUpdate(uniqueID)
		if err != nil {
			return err
		}
		if inst == nil {
			return domain.ErrNotFound
		}
		if inst.Status != entity.InstanceStatusInStock {
			return domain.ErrInstanceNotInStock
		}
		item, err := items.GetForUpdate(inst.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		one := decimal.NewFromInt(1)
		if err := items.SetStock(item.ID, item.CurrentStock.Sub(one)); err != nil {
			return err
		}
		if err := equipment.Delete(uniqueID); err != nil {
			return err
		}
		uid := inst.UniqueID
		return movements.Append(&entity.Movement{
			ItemID:     item.ID,
			Type:       entity.MovementTypeAdjustment,
			Quantity:   one.Neg(),
			Reason:     "baja de equipo",
			InstanceID: &uid,
			CreatedBy:  actor.UserID,
			CreatedAt:  time.Now(),
		})
	})
}
