package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvergaras/fieldops-api/internal/application/usecase"
	"github.com/dvergaras/fieldops-api/internal/domain/repository"
)

// ReportHandler proyecciones de solo lectura: dashboard y exportes (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Totales operativos del catálogo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  usecase.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// StockExcel godoc
// @Summary      Exportar stock a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/stock.xlsx [get]
func (h *ReportHandler) StockExcel(c *fiber.Ctx) error {
	data, err := h.uc.StockExcel()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock.xlsx"`)
	return c.Send(data)
}

// MovementsPDF godoc
// @Summary      Exportar historial de movimientos a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        item_id   query  string  false  "filtrar por ítem"
// @Param        crew_id   query  string  false  "filtrar por cuadrilla"
// @Param        order_id  query  string  false  "filtrar por orden"
// @Success      200  {file}  binary
// @Router       /api/reports/movements.pdf [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ItemID:  c.Query("item_id"),
		CrewID:  c.Query("crew_id"),
		OrderID: c.Query("order_id"),
	}
	data, err := h.uc.MovementsPDF(filter)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.pdf"`)
	return c.Send(data)
}
