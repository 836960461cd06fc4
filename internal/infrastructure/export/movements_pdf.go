package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dvergaras/fieldops-api/internal/application/usecase"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.MovementReportExporter = (*MarotoMovementExporter)(nil)

// MarotoMovementExporter genera el historial de movimientos en PDF usando Maroto v2.
type MarotoMovementExporter struct{}

// NewMarotoMovementExporter construye el exportador.
func NewMarotoMovementExporter() *MarotoMovementExporter { return &MarotoMovementExporter{} }

// MovementsReport genera el PDF y devuelve sus bytes. itemsByID resuelve el
// código de catálogo de cada movimiento (el libro no lleva FK al catálogo).
func (g *MarotoMovementExporter) MovementsReport(movements []*entity.Movement, itemsByID map[string]*entity.InventoryItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Historial de movimientos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(len(movements)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, mov := range movements {
		m.AddRows(movementRow(mov, itemsByID))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// titleRow: título del reporte y número de entradas.
func titleRow(count int) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("HISTORIAL DE MOVIMIENTOS DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d entradas", count), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Ítem", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Cantidad", 2, align.Right),
		h("Referencia", 2, align.Left),
		h("Motivo", 2, align.Left),
	)
}

// movementRow: una fila por entrada del libro.
func movementRow(m *entity.Movement, itemsByID map[string]*entity.InventoryItem) core.Row {
	itemCode := m.ItemID
	if item, ok := itemsByID[m.ItemID]; ok {
		itemCode = item.Code
	}
	ref := ""
	switch {
	case m.BatchCode != nil:
		ref = "bobina " + *m.BatchCode
	case m.InstanceID != nil:
		ref = "equipo " + *m.InstanceID
	case m.OrderID != nil:
		ref = "orden " + *m.OrderID
	}
	c := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		c(m.CreatedAt.Format("02/01/2006 15:04"), 2, align.Left),
		c(itemCode, 2, align.Left),
		c(m.Type, 2, align.Left),
		c(m.Quantity.String(), 2, align.Right),
		c(ref, 2, align.Left),
		c(m.Reason, 2, align.Left),
	)
}
