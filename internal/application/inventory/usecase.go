package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	domaininv "github.com/dvergaras/fieldops-api/internal/domain/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// RegisterMovementUseCase es el orquestador de movimientos: el único escritor
// de stock de catálogo, cantidad de bobinas, estado de equipos, totales por
// cuadrilla y libro de movimientos, todo bajo una misma transacción con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	crewRepo repository.CrewRepository
	orderRepo repository.WorkOrderRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, crewRepo repository.CrewRepository, orderRepo repository.WorkOrderRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, crewRepo: crewRepo, orderRepo: orderRepo}
}

// MovementInput entrada del orquestador.
// Type es uno de los entity.MovementType*; CrewID es obligatorio para
// ASSIGNMENT/RETURN/USAGE_ORDER, OrderID para USAGE_ORDER, Reason para
// RETURN y ADJUSTMENT.
type MovementInput struct {
	Type    string
	CrewID  string
	OrderID string
	Reason  string
	Lines   []Line
}

// RegisterMovement valida precondiciones, abre la transacción y aplica todas
// las líneas. Si cualquier línea falla, ninguna mutación queda persistida.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, actor Actor, input MovementInput) error {
	if err := uc.validate(actor, input); err != nil {
		return err
	}

	// Cuadrilla y orden deben existir antes de tocar stock
	if input.CrewID != "" {
		crew, err := uc.crewRepo.GetByID(input.CrewID)
		if err != nil {
			return err
		}
		if crew == nil {
			return domain.ErrNotFound
		}
	}
	if input.OrderID != "" {
		order, err := uc.orderRepo.GetByID(input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
	}

	now := time.Now()

	return uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		batches repository.BatchRepository,
		equipment repository.EquipmentRepository,
		movements repository.MovementRepository,
		crewStock repository.CrewStockRepository,
	) error {
		s := &txScope{items: items, batches: batches, equipment: equipment,
			movements: movements, crewStock: crewStock, actor: actor, input: input, now: now}
		for _, line := range input.Lines {
			var err error
			switch input.Type {
			case entity.MovementTypeEntry:
				err = s.doEntry(line)
			case entity.MovementTypeAssignment:
				err = s.doAssignment(line)
			case entity.MovementTypeReturn:
				err = s.doReturn(line)
			case entity.MovementTypeUsageOrder:
				err = s.doUsage(line)
			case entity.MovementTypeAdjustment:
				err = s.doAdjustment(line)
			default:
				err = domain.ErrInvalidInput
			}
			if err != nil {
				return err // rollback de todas las líneas
			}
		}
		return nil
	})
}

// validate revisa forma y permisos antes de cualquier acceso al store.
func (uc *RegisterMovementUseCase) validate(actor Actor, input MovementInput) error {
	if actor.UserID == "" || len(input.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeEntry:
		if input.CrewID != "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAssignment:
		if input.CrewID == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeReturn:
		if input.CrewID == "" || input.Reason == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeUsageOrder:
		if input.CrewID == "" || input.OrderID == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if input.Reason == "" {
			return domain.ErrInvalidInput
		}
		if actor.Role != entity.RoleAdmin {
			return domain.ErrForbidden
		}
	default:
		return domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if err := validateLineShape(input.Type, line); err != nil {
			return err
		}
	}
	return nil
}

func validateLineShape(movType string, line Line) error {
	switch l := line.(type) {
	case PlainLine:
		if movType == entity.MovementTypeAdjustment {
			if l.Quantity.IsZero() {
				return domain.ErrInvalidInput
			}
			return nil
		}
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case BatchLine:
		// La cantidad debe venir y ser no negativa; la igualdad con la cantidad
		// restante de la bobina se verifica bajo lock.
		if movType == entity.MovementTypeEntry || movType == entity.MovementTypeAdjustment {
			return domain.ErrInvalidInput // altas y ajustes de bobina van por su API propia
		}
		if l.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
		if movType == entity.MovementTypeUsageOrder && !l.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case EquipmentLine:
		if movType == entity.MovementTypeEntry || movType == entity.MovementTypeAdjustment {
			return domain.ErrInvalidInput // el alta de equipos va por el registro de instancias
		}
		if len(l.InstanceIDs) == 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// txScope agrupa los repos de la transacción en curso y el contexto del movimiento.
type txScope struct {
	items     repository.ItemRepository
	batches   repository.BatchRepository
	equipment repository.EquipmentRepository
	movements repository.MovementRepository
	crewStock repository.CrewStockRepository
	actor     Actor
	input     MovementInput
	now       time.Time
}

// lockItem bloquea y devuelve el ítem, o ErrNotFound.
func (s *txScope) lockItem(itemID string) (*entity.InventoryItem, error) {
	item, err := s.items.GetForUpdate(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// addWarehouse aplica un delta al stock de almacén del ítem; rechaza negativos.
func (s *txScope) addWarehouse(item *entity.InventoryItem, delta decimal.Decimal) error {
	newQty := item.CurrentStock.Add(delta)
	if newQty.IsNegative() {
		return &domain.InsufficientStockError{
			ItemCode:  item.Code,
			Requested: delta.Neg(),
			Available: item.CurrentStock,
		}
	}
	item.CurrentStock = newQty
	return s.items.SetStock(item.ID, newQty)
}

// addCrew aplica un delta al total de la cuadrilla para el ítem; rechaza negativos.
func (s *txScope) addCrew(crewID string, item *entity.InventoryItem, delta decimal.Decimal) error {
	cs, err := s.crewStock.GetForUpdate(crewID, item.ID)
	if err != nil {
		return err
	}
	newQty := cs.Quantity.Add(delta)
	if newQty.IsNegative() {
		return &domain.InsufficientStockError{
			ItemCode:  item.Code,
			Requested: delta.Neg(),
			Available: cs.Quantity,
		}
	}
	cs.Quantity = newQty
	cs.UpdatedAt = s.now
	return s.crewStock.Upsert(cs)
}

// append escribe una fila del libro; una por cambio atómico de cantidad.
func (s *txScope) append(itemID string, delta decimal.Decimal, batchCode, instanceID *string) error {
	m := &entity.Movement{
		ItemID:     itemID,
		Type:       s.input.Type,
		Quantity:   delta,
		Reason:     s.input.Reason,
		CreatedBy:  s.actor.UserID,
		CreatedAt:  s.now,
		BatchCode:  batchCode,
		InstanceID: instanceID,
	}
	if s.input.CrewID != "" {
		crewID := s.input.CrewID
		m.CrewID = &crewID
	}
	if s.input.OrderID != "" {
		orderID := s.input.OrderID
		m.OrderID = &orderID
	}
	return s.movements.Append(m)
}

// doEntry: entrada a almacén. Solo líneas simples; las bobinas y los equipos
// tienen sus altas propias (API de bobinas, registro de instancias).
func (s *txScope) doEntry(line Line) error {
	l, ok := line.(PlainLine)
	if !ok {
		return domain.ErrInvalidInput
	}
	item, err := s.lockItem(l.ItemID)
	if err != nil {
		return err
	}
	if item.Type == entity.ItemTypeEquipment {
		return domain.ErrInvalidInput // su stock se deriva del conteo de instancias
	}
	if err := s.addWarehouse(item, l.Quantity); err != nil {
		return err
	}
	return s.append(item.ID, l.Quantity, nil, nil)
}

// doAssignment: almacén → cuadrilla.
func (s *txScope) doAssignment(line Line) error {
	switch l := line.(type) {
	case PlainLine:
		item, err := s.lockItem(l.ItemID)
		if err != nil {
			return err
		}
		if item.Type == entity.ItemTypeEquipment {
			return domain.ErrInvalidInput // equipos se asignan por instance_ids
		}
		// Ítems con bobinas activas se asignan por código de bobina, nunca a granel
		itemBatches, err := s.batches.ListByItem(item.ID)
		if err != nil {
			return err
		}
		for _, b := range itemBatches {
			if b.Status == entity.BatchStatusActive {
				return domain.ErrInvalidInput
			}
		}
		if err := s.addWarehouse(item, l.Quantity.Neg()); err != nil {
			return err
		}
		if err := s.addCrew(s.input.CrewID, item, l.Quantity); err != nil {
			return err
		}
		return s.append(item.ID, l.Quantity.Neg(), nil, nil)

	case BatchLine:
		batch, err := s.lockBatch(l.BatchCode, l.ItemID)
		if err != nil {
			return err
		}
		if !batch.AtWarehouse() {
			return domain.ErrBatchInUse
		}
		// Transferencia de bobina entera: la cantidad pedida debe ser todo lo
		// que queda en la bobina; no se parte una bobina entre cuadrillas.
		if !l.Quantity.Equal(batch.CurrentQty) {
			return domain.ErrInvalidInput
		}
		item, err := s.lockItem(batch.ItemID)
		if err != nil {
			return err
		}
		if err := s.addWarehouse(item, l.Quantity.Neg()); err != nil {
			return err
		}
		if err := s.addCrew(s.input.CrewID, item, l.Quantity); err != nil {
			return err
		}
		crewID := s.input.CrewID
		batch.Location = entity.BatchLocationCrew
		batch.CrewID = &crewID
		batch.UpdatedAt = s.now
		if err := s.batches.Update(batch); err != nil {
			return err
		}
		return s.append(item.ID, l.Quantity.Neg(), &batch.Code, nil)

	case EquipmentLine:
		return s.moveInstances(l, entity.InstanceStatusAssigned)
	}
	return domain.ErrInvalidInput
}

// doReturn: cuadrilla → almacén, espejo de doAssignment.
func (s *txScope) doReturn(line Line) error {
	switch l := line.(type) {
	case PlainLine:
		item, err := s.lockItem(l.ItemID)
		if err != nil {
			return err
		}
		if item.Type == entity.ItemTypeEquipment {
			return domain.ErrInvalidInput
		}
		if err := s.addCrew(s.input.CrewID, item, l.Quantity.Neg()); err != nil {
			return err
		}
		if err := s.addWarehouse(item, l.Quantity); err != nil {
			return err
		}
		return s.append(item.ID, l.Quantity, nil, nil)

	case BatchLine:
		batch, err := s.lockBatch(l.BatchCode, l.ItemID)
		if err != nil {
			return err
		}
		if batch.Location != entity.BatchLocationCrew || batch.CrewID == nil || *batch.CrewID != s.input.CrewID {
			return domain.ErrInvalidInput // la bobina no está en esa cuadrilla
		}
		// Devolución de bobina entera; una bobina agotada vuelve con delta cero
		if !l.Quantity.Equal(batch.CurrentQty) {
			return domain.ErrInvalidInput
		}
		item, err := s.lockItem(batch.ItemID)
		if err != nil {
			return err
		}
		if !l.Quantity.IsZero() {
			if err := s.addCrew(s.input.CrewID, item, l.Quantity.Neg()); err != nil {
				return err
			}
			if err := s.addWarehouse(item, l.Quantity); err != nil {
				return err
			}
		}
		batch.Location = entity.BatchLocationWarehouse
		batch.CrewID = nil
		batch.UpdatedAt = s.now
		if err := s.batches.Update(batch); err != nil {
			return err
		}
		return s.append(item.ID, l.Quantity, &batch.Code, nil)

	case EquipmentLine:
		return s.moveInstances(l, entity.InstanceStatusInStock)
	}
	return domain.ErrInvalidInput
}

// doUsage: consumo del stock de cuadrilla contra una orden de trabajo.
func (s *txScope) doUsage(line Line) error {
	switch l := line.(type) {
	case PlainLine:
		item, err := s.lockItem(l.ItemID)
		if err != nil {
			return err
		}
		if item.Type == entity.ItemTypeEquipment {
			return domain.ErrInvalidInput
		}
		if err := s.addCrew(s.input.CrewID, item, l.Quantity.Neg()); err != nil {
			return err
		}
		return s.append(item.ID, l.Quantity.Neg(), nil, nil)

	case BatchLine:
		// Consumo parcial de bobina en cuadrilla: aquí sí se descuenta por metros
		batch, err := s.lockBatch(l.BatchCode, l.ItemID)
		if err != nil {
			return err
		}
		if batch.Location != entity.BatchLocationCrew || batch.CrewID == nil || *batch.CrewID != s.input.CrewID {
			return domain.ErrInvalidInput
		}
		if l.Quantity.GreaterThan(batch.CurrentQty) {
			item, err := s.items.GetByID(batch.ItemID)
			code := batch.Code
			if err == nil && item != nil {
				code = item.Code
			}
			return &domain.InsufficientStockError{ItemCode: code, Requested: l.Quantity, Available: batch.CurrentQty}
		}
		item, err := s.lockItem(batch.ItemID)
		if err != nil {
			return err
		}
		if err := s.addCrew(s.input.CrewID, item, l.Quantity.Neg()); err != nil {
			return err
		}
		batch.CurrentQty = batch.CurrentQty.Sub(l.Quantity)
		batch.RecomputeStatus()
		batch.UpdatedAt = s.now
		if err := s.batches.Update(batch); err != nil {
			return err
		}
		return s.append(item.ID, l.Quantity.Neg(), &batch.Code, nil)

	case EquipmentLine:
		return s.moveInstances(l, entity.InstanceStatusInstalled)
	}
	return domain.ErrInvalidInput
}

// doAdjustment: corrección administrativa con delta arbitrario, sobre almacén
// o sobre la cuadrilla indicada.
func (s *txScope) doAdjustment(line Line) error {
	l, ok := line.(PlainLine)
	if !ok {
		return domain.ErrInvalidInput
	}
	item, err := s.lockItem(l.ItemID)
	if err != nil {
		return err
	}
	if item.Type == entity.ItemTypeEquipment {
		return domain.ErrInvalidInput
	}
	if s.input.CrewID != "" {
		if err := s.addCrew(s.input.CrewID, item, l.Quantity); err != nil {
			return err
		}
	} else {
		if err := s.addWarehouse(item, l.Quantity); err != nil {
			return err
		}
	}
	return s.append(item.ID, l.Quantity, nil, nil)
}

// lockBatch bloquea la bobina y verifica que pertenezca al ítem de la línea.
func (s *txScope) lockBatch(code, itemID string) (*entity.Batch, error) {
	batch, err := s.batches.GetByCodeForUpdate(code)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.ItemID != itemID {
		return nil, domain.ErrInvalidInput
	}
	return batch, nil
}

// moveInstances aplica la transición de estado a cada equipo de la línea y
// escribe una fila del libro por instancia (delta ±1).
func (s *txScope) moveInstances(l EquipmentLine, target string) error {
	item, err := s.lockItem(l.ItemID)
	if err != nil {
		return err
	}
	if item.Type != entity.ItemTypeEquipment {
		return domain.ErrInvalidInput
	}
	one := decimal.NewFromInt(1)
	for _, uniqueID := range l.InstanceIDs {
		inst, err := s.equipment.GetByUniqueIDForUpdate(uniqueID)
		if err != nil {
			return err
		}
		if inst == nil {
			return domain.ErrNotFound
		}
		if inst.ItemID != item.ID {
			return domain.ErrInvalidInput
		}
		if !domaininv.CanTransition(inst.Status, target) {
			return &domain.InvalidTransitionError{UniqueID: inst.UniqueID, From: inst.Status, To: target}
		}

		var delta decimal.Decimal
		switch target {
		case entity.InstanceStatusAssigned:
			// almacén −1, cuadrilla +1
			if err := s.addWarehouse(item, one.Neg()); err != nil {
				return err
			}
			if err := s.addCrew(s.input.CrewID, item, one); err != nil {
				return err
			}
			crewID := s.input.CrewID
			inst.AssignedTo = &entity.InstanceAssignment{CrewID: crewID, AssignedAt: s.now}
			inst.InstalledAt = nil
			delta = one.Neg()
		case entity.InstanceStatusInStock:
			// devolución: cuadrilla −1, almacén +1
			if inst.AssignedTo == nil || inst.AssignedTo.CrewID != s.input.CrewID {
				return domain.ErrInvalidInput
			}
			if err := s.addCrew(s.input.CrewID, item, one.Neg()); err != nil {
				return err
			}
			if err := s.addWarehouse(item, one); err != nil {
				return err
			}
			inst.AssignedTo = nil
			inst.InstalledAt = nil
			delta = one
		case entity.InstanceStatusInstalled:
			// consumo en orden: cuadrilla −1
			if inst.AssignedTo == nil || inst.AssignedTo.CrewID != s.input.CrewID {
				return domain.ErrInvalidInput
			}
			if err := s.addCrew(s.input.CrewID, item, one.Neg()); err != nil {
				return err
			}
			inst.InstalledAt = &entity.InstanceInstallation{OrderID: s.input.OrderID, InstalledAt: s.now}
			inst.AssignedTo = nil
			delta = one.Neg()
		default:
			return domain.ErrInvalidInput
		}

		inst.Status = target
		inst.UpdatedAt = s.now
		if err := s.equipment.Update(inst); err != nil {
			return err
		}
		uid := inst.UniqueID
		if err := s.append(item.ID, delta, nil, &uid); err != nil {
			return err
		}
	}
	return nil
}
