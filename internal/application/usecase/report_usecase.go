package usecase

import (
	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// StockReportExporter genera el reporte de stock en Excel (puerto; la
// implementación vive en infrastructure/export).
type StockReportExporter interface {
	StockReport(items []*entity.InventoryItem) ([]byte, error)
}

// MovementReportExporter genera el historial de movimientos en PDF.
type MovementReportExporter interface {
	MovementsReport(movements []*entity.Movement, itemsByID map[string]*entity.InventoryItem) ([]byte, error)
}

// ReportUseCase proyecciones de solo lectura sobre catálogo y libro de
// movimientos; nunca muta estado.
type ReportUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	excel    StockReportExporter
	pdf      MovementReportExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, excel StockReportExporter, pdf MovementReportExporter) *ReportUseCase {
	return &ReportUseCase{itemRepo: itemRepo, movRepo: movRepo, excel: excel, pdf: pdf}
}

// DashboardResponse totales operativos para la vista principal.
type DashboardResponse struct {
	TotalItems    int                `json:"total_items"`
	TotalMaterial int                `json:"total_material"`
	TotalEquip    int                `json:"total_equipment"`
	TotalTools    int                `json:"total_tools"`
	LowStock      []dto.ItemResponse `json:"low_stock"`
}

// Dashboard arma los contadores del catálogo y la lista de stock bajo.
func (uc *ReportUseCase) Dashboard() (*DashboardResponse, error) {
	items, err := uc.itemRepo.List(0, 0) // limit 0 = sin límite
	if err != nil {
		return nil, err
	}
	resp := &DashboardResponse{LowStock: []dto.ItemResponse{}}
	for _, item := range items {
		resp.TotalItems++
		switch item.Type {
		case entity.ItemTypeMaterial:
			resp.TotalMaterial++
		case entity.ItemTypeEquipment:
			resp.TotalEquip++
		case entity.ItemTypeTool:
			resp.TotalTools++
		}
		if item.LowStock() {
			resp.LowStock = append(resp.LowStock, dto.ItemResponse{
				ID: item.ID, Code: item.Code, Type: item.Type, Description: item.Description,
				Unit: item.Unit, CurrentStock: item.CurrentStock, MinStock: item.MinStock, LowStock: true,
			})
		}
	}
	return resp, nil
}

// StockExcel exporta el catálogo completo con su stock a un libro Excel.
func (uc *ReportUseCase) StockExcel() ([]byte, error) {
	items, err := uc.itemRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	return uc.excel.StockReport(items)
}

// MovementsPDF exporta el historial filtrado a PDF.
func (uc *ReportUseCase) MovementsPDF(filter repository.MovementFilter) ([]byte, error) {
	if filter.Limit <= 0 {
		filter.Limit = 500
	}
	movements, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	itemsByID := map[string]*entity.InventoryItem{}
	for _, m := range movements {
		if _, ok := itemsByID[m.ItemID]; ok {
			continue
		}
		if item, err := uc.itemRepo.GetByID(m.ItemID); err == nil && item != nil {
			itemsByID[m.ItemID] = item
		}
	}
	return uc.pdf.MovementsReport(movements, itemsByID)
}
