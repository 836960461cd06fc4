package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/domain"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// CrewUseCase CRUD de cuadrillas y consulta de su inventario asignado.
type CrewUseCase struct {
	crewRepo  repository.CrewRepository
	stockRepo repository.CrewStockRepository
	itemRepo  repository.ItemRepository
	batchRepo repository.BatchRepository
}

// NewCrewUseCase construye el caso de uso.
func NewCrewUseCase(crewRepo repository.CrewRepository, stockRepo repository.CrewStockRepository, itemRepo repository.ItemRepository, batchRepo repository.BatchRepository) *CrewUseCase {
	return &CrewUseCase{crewRepo: crewRepo, stockRepo: stockRepo, itemRepo: itemRepo, batchRepo: batchRepo}
}

// Create da de alta una cuadrilla activa.
func (uc *CrewUseCase) Create(in dto.CreateCrewRequest) (*entity.Crew, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	crew := &entity.Crew{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Leader:    in.Leader,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.crewRepo.Create(crew); err != nil {
		return nil, err
	}
	return crew, nil
}

// GetByID obtiene una cuadrilla.
func (uc *CrewUseCase) GetByID(id string) (*entity.Crew, error) {
	crew, err := uc.crewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if crew == nil {
		return nil, domain.ErrNotFound
	}
	return crew, nil
}

// List lista cuadrillas paginadas.
func (uc *CrewUseCase) List(limit, offset int) ([]*entity.Crew, error) {
	return uc.crewRepo.List(limit, offset)
}

// Update edita los campos de perfil de la cuadrilla.
func (uc *CrewUseCase) Update(id string, in dto.UpdateCrewRequest) (*entity.Crew, error) {
	crew, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		crew.Name = in.Name
	}
	if in.Leader != nil {
		crew.Leader = *in.Leader
	}
	if in.Phone != nil {
		crew.Phone = *in.Phone
	}
	if in.Active != nil {
		crew.Active = *in.Active
	}
	crew.UpdatedAt = time.Now()
	if err := uc.crewRepo.Update(crew); err != nil {
		return nil, err
	}
	return crew, nil
}

// Delete borra una cuadrilla sin inventario ni bobinas en su poder.
func (uc *CrewUseCase) Delete(id string) error {
	held, err := uc.stockRepo.ListByCrew(id)
	if err != nil {
		return err
	}
	for _, cs := range held {
		if !cs.Quantity.IsZero() {
			return domain.ErrHasDependencies // debe devolver su inventario primero
		}
	}
	// Una bobina agotada que sigue ubicada en la cuadrilla también bloquea:
	// tiene que devolverse para que quede registrado en el libro.
	batches, err := uc.batchRepo.ListByCrew(id)
	if err != nil {
		return err
	}
	if len(batches) > 0 {
		return domain.ErrHasDependencies
	}
	return uc.crewRepo.Delete(id)
}

// Inventory devuelve el inventario en poder de la cuadrilla, con los datos de
// catálogo de cada ítem.
func (uc *CrewUseCase) Inventory(crewID string) ([]dto.CrewStockResponse, error) {
	if _, err := uc.GetByID(crewID); err != nil {
		return nil, err
	}
	held, err := uc.stockRepo.ListByCrew(crewID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CrewStockResponse, 0, len(held))
	for _, cs := range held {
		if cs.Quantity.IsZero() {
			continue
		}
		resp := dto.CrewStockResponse{ItemID: cs.ItemID, Quantity: cs.Quantity}
		if item, err := uc.itemRepo.GetByID(cs.ItemID); err == nil && item != nil {
			resp.ItemCode = item.Code
			resp.Unit = item.Unit
		}
		out = append(out, resp)
	}
	return out, nil
}
