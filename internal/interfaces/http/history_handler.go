package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// HistoryHandler consulta del libro de movimientos (protegido, solo lectura).
type HistoryHandler struct {
	uc *inventory.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *inventory.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		ItemID:     m.ItemID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		CrewID:     m.CrewID,
		OrderID:    m.OrderID,
		BatchCode:  m.BatchCode,
		InstanceID: m.InstanceID,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}

// Query godoc
// @Summary      Historial de movimientos
// @Description  Entradas del libro ordenadas de más reciente a más antigua.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id     query  string  false  "filtrar por ítem"
// @Param        crew_id     query  string  false  "filtrar por cuadrilla"
// @Param        order_id    query  string  false  "filtrar por orden de trabajo"
// @Param        batch_code  query  string  false  "filtrar por bobina"
// @Param        from        query  string  false  "RFC 3339 o 2006-01-02"
// @Param        to          query  string  false  "RFC 3339 o 2006-01-02 (inclusivo)"
// @Param        limit       query  int     false  "máx. filas (default 20)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/history [get]
func (h *HistoryHandler) Query(c *fiber.Ctx) error {
	var in dto.HistoryQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	movements, err := h.uc.Query(in)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}
