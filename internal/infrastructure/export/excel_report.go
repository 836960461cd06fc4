// Package export implementa los exportadores de reportes (Excel y PDF) que
// consumen los casos de uso de reportes.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dvergaras/fieldops-api/internal/application/usecase"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

var _ usecase.StockReportExporter = (*ExcelStockExporter)(nil)

// ExcelStockExporter genera el reporte de stock como libro Excel (.xlsx).
type ExcelStockExporter struct{}

// NewExcelStockExporter construye el exportador.
func NewExcelStockExporter() *ExcelStockExporter { return &ExcelStockExporter{} }

// StockReport arma una hoja con una fila por ítem del catálogo.
func (e *ExcelStockExporter) StockReport(items []*entity.InventoryItem) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"codigo",
		"tipo",
		"descripcion",
		"unidad",
		"stock_actual",
		"stock_minimo",
		"stock_bajo",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
	}

	row := 2
	for _, it := range items {
		lowStock := ""
		if it.LowStock() {
			lowStock = "SI"
		}
		excelRow := []interface{}{
			it.Code,
			it.Type,
			it.Description,
			it.Unit,
			it.CurrentStock.InexactFloat64(),
			it.MinStock.InexactFloat64(),
			lowStock,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("excel: celda fila %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: escribir fila %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
