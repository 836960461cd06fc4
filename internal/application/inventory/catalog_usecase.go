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

var validItemTypes = map[string]bool{
	entity.ItemTypeMaterial:  true,
	entity.ItemTypeEquipment: true,
	entity.ItemTypeTool:      true,
}

// CatalogUseCase administra el catálogo maestro de ítems. Las altas con stock
// inicial y los borrados en cascada pasan por el TxRunner porque tocan stock y
// libro de movimientos.
type CatalogUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(txRunner TxRunner, itemRepo repository.ItemRepository) *CatalogUseCase {
	return &CatalogUseCase{txRunner: txRunner, itemRepo: itemRepo}
}

// CreateItem da de alta un ítem. Para type=equipment el stock inicial siempre
// es cero (se deriva del registro de instancias); un stock inicial de material
// genera la fila ENTRY correspondiente en el libro.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, actor Actor, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	if in.Code == "" || in.Unit == "" || !validItemTypes[in.Type] {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.IsNegative() || in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.ItemTypeEquipment && !in.InitialStock.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Type:         in.Type,
		Description:  in.Description,
		Unit:         in.Unit,
		CurrentStock: decimal.Zero,
		MinStock:     in.MinStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		_ repository.BatchRepository,
		_ repository.EquipmentRepository,
		movements repository.MovementRepository,
		_ repository.CrewStockRepository,
	) error {
		if err := items.Create(item); err != nil {
			return err
		}
		if in.InitialStock.IsZero() {
			return nil
		}
		item.CurrentStock = in.InitialStock
		if err := items.SetStock(item.ID, in.InitialStock); err != nil {
			return err
		}
		return movements.Append(&entity.Movement{
			ItemID:    item.ID,
			Type:      entity.MovementTypeEntry,
			Quantity:  in.InitialStock,
			Reason:    "stock inicial",
			CreatedBy: actor.UserID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem edita los campos mutables. CurrentStock jamás se escribe por esta
// vía: es la barrera que impide saltarse el libro de movimientos.
func (uc *CatalogUseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != "" {
		if !validItemTypes[in.Type] {
			return nil, domain.ErrInvalidInput
		}
		item.Type = in.Type
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Unit != "" {
		item.Unit = in.Unit
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem borra un ítem sin referencias vivas. Con bobinas dependientes
// falla listando sus códigos salvo force, que las borra en cascada; equipos
// registrados o stock en cuadrillas bloquean el borrado siempre.
func (uc *CatalogUseCase) DeleteItem(ctx context.Context, id string, force bool) error {
	return uc.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		batches repository.BatchRepository,
		equipment repository.EquipmentRepository,
		_ repository.MovementRepository,
		crewStock repository.CrewStockRepository,
	) error {
		item, err := items.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		count, err := equipment.CountByItem(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrHasDependencies
		}
		held, err := crewStock.ListByItem(id)
		if err != nil {
			return err
		}
		for _, cs := range held {
			if !cs.Quantity.IsZero() {
				return domain.ErrHasDependencies
			}
		}

		itemBatches, err := batches.ListByItem(id)
		if err != nil {
			return err
		}
		if len(itemBatches) > 0 {
			if !force {
				codes := make([]string, 0, len(itemBatches))
				for _, b := range itemBatches {
					codes = append(codes, b.Code)
				}
				return &domain.DependentBatchesError{ItemCode: item.Code, BatchCodes: codes}
			}
			for _, b := range itemBatches {
				if b.Location == entity.BatchLocationCrew && !b.CurrentQty.IsZero() {
					return domain.ErrBatchInUse // primero hay que devolverla
				}
			}
			if err := batches.DeleteByItem(id); err != nil {
				return err
			}
		}
		return items.Delete(id)
	})
}

// GetItem busca por ID o por código de catálogo.
func (uc *CatalogUseCase) GetItem(idOrCode string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(idOrCode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item, err = uc.itemRepo.GetByCode(idOrCode)
		if err != nil {
			return nil, err
		}
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems lista el catálogo paginado.
func (uc *CatalogUseCase) ListItems(limit, offset int) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.List(limit, offset)
}

// ListLowStock lista los ítems por debajo de su umbral mínimo.
func (uc *CatalogUseCase) ListLowStock() ([]*entity.InventoryItem, error) {
	return uc.itemRepo.ListLowStock()
}
