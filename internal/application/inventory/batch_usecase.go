package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// BatchUseCase administra las bobinas. El alta y los ajustes mueven stock de
// almacén, así que corren bajo el TxRunner y dejan su fila en el libro. Las
// transferencias entre almacén y cuadrilla NO están aquí: van siempre por el
// orquestador de movimientos.
type BatchUseCase struct {
	txRunner  TxRunner
	batchRepo repository.BatchRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(txRunner TxRunner, batchRepo repository.BatchRepository) *BatchUseCase {
	return &BatchUseCase{txRunner: txRunner, batchRepo: batchRepo}
}

// CreateBatch da de alta una bobina en almacén. La cantidad inicial cuenta como
// entrada de stock del ítem (fila ENTRY con el código de bobina).
func (uc *BatchUseCase) CreateBatch(ctx context.Context, actor Actor, in dto.CreateBatchRequest) (*entity.Batch, error) {
	if in.BatchCode == "" || in.ItemID == "" || !in.InitialQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	batch := &entity.Batch{
		ID:         uuid.New().String(),
		Code:       in.BatchCode,
		ItemID:     in.ItemID,
		InitialQty: in.InitialQty,
		CurrentQty: in.InitialQty,
		Status:     entity.BatchStatusActive,
		Location:   entity.BatchLocationWarehouse,
		AcquiredAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		batches repository.BatchRepository,
		_ repository.EquipmentRepository,
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
		if item.Type == entity.ItemTypeEquipment {
			return domain.ErrInvalidInput // los equipos no se manejan por bobina
		}
		batch.Unit = item.Unit
		if err := batches.Create(batch); err != nil {
			return err
		}
		if err := items.SetStock(item.ID, item.CurrentStock.Add(in.InitialQty)); err != nil {
			return err
		}
		reason := in.Reason
		if reason == "" {
			reason = "alta de bobina"
		}
		code := batch.Code
		return movements.Append(&entity.Movement{
			ItemID:    item.ID,
			Type:      entity.MovementTypeEntry,
			Quantity:  in.InitialQty,
			Reason:    reason,
			BatchCode: &code,
			CreatedBy: actor.UserID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// AddQuantity suma metros a una bobina en almacén; si estaba agotada vuelve a
// active. Requiere delta positivo.
func (uc *BatchUseCase) AddQuantity(ctx context.Context, actor Actor, code string, in dto.AddBatchQuantityRequest) (*entity.Batch, error) {
	if !in.QuantityToAdd.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Batch
	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		batches repository.BatchRepository,
		_ repository.EquipmentRepository,
		movements repository.MovementRepository,
		_ repository.CrewStockRepository,
	) error {
		batch, err := batches.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if !batch.AtWarehouse() {
			return domain.ErrBatchInUse // la recarga se hace en bodega
		}
		item, err := items.GetForUpdate(batch.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		batch.CurrentQty = batch.CurrentQty.Add(in.QuantityToAdd)
		if batch.CurrentQty.GreaterThan(batch.InitialQty) {
			batch.InitialQty = batch.CurrentQty
		}
		batch.RecomputeStatus()
		batch.UpdatedAt = time.Now()
		if err := batches.Update(batch); err != nil {
			return err
		}
		if err := items.SetStock(item.ID, item.CurrentStock.Add(in.QuantityToAdd)); err != nil {
			return err
		}
		reason := in.Reason
		if reason == "" {
			reason = "recarga de bobina"
		}
		bc := batch.Code
		if err := movements.Append(&entity.Movement{
			ItemID:    item.ID,
			Type:      entity.MovementTypeEntry,
			Quantity:  in.QuantityToAdd,
			Reason:    reason,
			BatchCode: &bc,
			CreatedBy: actor.UserID,
			CreatedAt: batch.UpdatedAt,
		}); err != nil {
			return err
		}
		result = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustBatch es la corrección administrativa: fija la cantidad restante (y
// opcionalmente reasigna la bobina a otro ítem), recalcula el estado y deja
// filas ADJUSTMENT que mantienen el libro cuadrado. Solo admin.
func (uc *BatchUseCase) AdjustBatch(ctx context.Context, actor Actor, code string, in dto.AdjustBatchRequest) (*entity.Batch, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.CurrentQty.IsNegative() || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Batch
	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		batches repository.BatchRepository,
		_ repository.EquipmentRepository,
		movements repository.MovementRepository,
		crewStock repository.CrewStockRepository,
	) error {
		batch, err := batches.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		bc := batch.Code

		adjust := func(itemID string, delta decimal.Decimal) error {
			if delta.IsZero() {
				return nil
			}
			item, err := items.GetForUpdate(itemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			mov := &entity.Movement{
				ItemID:    item.ID,
				Type:      entity.MovementTypeAdjustment,
				Quantity:  delta,
				Reason:    in.Reason,
				BatchCode: &bc,
				CreatedBy: actor.UserID,
				CreatedAt: now,
			}
			if batch.Location == entity.BatchLocationCrew && batch.CrewID != nil {
				cs, err := crewStock.GetForUpdate(*batch.CrewID, item.ID)
				if err != nil {
					return err
				}
				newQty := cs.Quantity.Add(delta)
				if newQty.IsNegative() {
					return &domain.InsufficientStockError{ItemCode: item.Code, Requested: delta.Neg(), Available: cs.Quantity}
				}
				cs.Quantity = newQty
				cs.UpdatedAt = now
				if err := crewStock.Upsert(cs); err != nil {
					return err
				}
				mov.CrewID = batch.CrewID
			} else {
				newQty := item.CurrentStock.Add(delta)
				if newQty.IsNegative() {
					return &domain.InsufficientStockError{ItemCode: item.Code, Requested: delta.Neg(), Available: item.CurrentStock}
				}
				if err := items.SetStock(item.ID, newQty); err != nil {
					return err
				}
			}
			return movements.Append(mov)
		}

		if in.ItemID != "" && in.ItemID != batch.ItemID {
			// Reasignar la bobina: la cantidad sale del ítem viejo y entra al nuevo
			if err := adjust(batch.ItemID, batch.CurrentQty.Neg()); err != nil {
				return err
			}
			batch.ItemID = in.ItemID
			if err := adjust(in.ItemID, in.CurrentQty); err != nil {
				return err
			}
		} else {
			if err := adjust(batch.ItemID, in.CurrentQty.Sub(batch.CurrentQty)); err != nil {
				return err
			}
		}

		batch.CurrentQty = in.CurrentQty
		if batch.CurrentQty.GreaterThan(batch.InitialQty) {
			batch.InitialQty = batch.CurrentQty
		}
		batch.RecomputeStatus()
		batch.UpdatedAt = now
		if err := batches.Update(batch); err != nil {
			return err
		}
		result = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteBatch borra una bobina. Política estricta: una bobina con cantidad en
// poder de una cuadrilla no se borra (hay que devolverla primero). Si queda
// cantidad en almacén se descuenta con una fila ADJUSTMENT para no descuadrar
// el libro.
func (uc *BatchUseCase) DeleteBatch(ctx context.Context, actor Actor, code string) error {
	return uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		batches repository.BatchRepository,
		_ repository.EquipmentRepository,
		movements repository.MovementRepository,
		_ repository.CrewStockRepository,
	) error {
		batch, err := batches.GetByCodeForUpdate(code)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.Location == entity.BatchLocationCrew && !batch.CurrentQty.IsZero() {
			return domain.ErrBatchInUse
		}
		if !batch.CurrentQty.IsZero() {
			item, err := items.GetForUpdate(batch.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if err := items.SetStock(item.ID, item.CurrentStock.Sub(batch.CurrentQty)); err != nil {
				return err
			}
			bc := batch.Code
			if err := movements.Append(&entity.Movement{
				ItemID:    item.ID,
				Type:      entity.MovementTypeAdjustment,
				Quantity:  batch.CurrentQty.Neg(),
				Reason:    "baja de bobina",
				BatchCode: &bc,
				CreatedBy: actor.UserID,
				CreatedAt: time.Now(),
			}); err != nil {
				return err
			}
		}
		return batches.Delete(code)
	})
}

// GetBatch devuelve una bobina por código.
func (uc *BatchUseCase) GetBatch(code string) (*entity.Batch, error) {
	batch, err := uc.batchRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// ListByItem lista las bobinas de un ítem.
func (uc *BatchUseCase) ListByItem(itemID string) ([]*entity.Batch, error) {
	return uc.batchRepo.ListByItem(itemID)
}

// ListByCrew lista las bobinas en poder de una cuadrilla.
func (uc *BatchUseCase) ListByCrew(crewID string) ([]*entity.Batch, error) {
	return uc.batchRepo.ListByCrew(crewID)
}
