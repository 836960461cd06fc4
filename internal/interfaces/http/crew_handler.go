package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/application/usecase"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// CrewHandler CRUD de cuadrillas y consulta de su inventario (protegido).
type CrewHandler struct {
	uc *usecase.CrewUseCase
}

// NewCrewHandler construye el handler.
func NewCrewHandler(uc *usecase.CrewUseCase) *CrewHandler {
	return &CrewHandler{uc: uc}
}

func toCrewResponse(crew *entity.Crew) dto.CrewResponse {
	return dto.CrewResponse{
		ID:        crew.ID,
		Name:      crew.Name,
		Leader:    crew.Leader,
		Phone:     crew.Phone,
		Active:    crew.Active,
		CreatedAt: crew.CreatedAt,
	}
}

// Create godoc
// @Summary      Crear cuadrilla
// @Tags         crews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCrewRequest  true  "name, leader, phone"
// @Success      201   {object}  dto.CrewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/crews [post]
func (h *CrewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCrewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	crew, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCrewResponse(crew))
}

// List godoc
// @Summary      Listar cuadrillas
// @Tags         crews
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.CrewResponse
// @Router       /api/crews [get]
func (h *CrewHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	crews, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CrewResponse, 0, len(crews))
	for _, crew := range crews {
		out = append(out, toCrewResponse(crew))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuadrilla
// @Tags         crews
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuadrilla"
// @Success      200  {object}  dto.CrewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crews/{id} [get]
func (h *CrewHandler) GetByID(c *fiber.Ctx) error {
	crew, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCrewResponse(crew))
}

// Update godoc
// @Summary      Editar cuadrilla
// @Tags         crews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la cuadrilla"
// @Param        body  body  dto.UpdateCrewRequest  true  "campos a editar"
// @Success      200   {object}  dto.CrewResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/crews/{id} [put]
func (h *CrewHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCrewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	crew, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toCrewResponse(crew))
}

// Delete godoc
// @Summary      Borrar cuadrilla
// @Description  Una cuadrilla con inventario en su poder no se borra: debe devolverlo primero.
// @Tags         crews
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuadrilla"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/crews/{id} [delete]
func (h *CrewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Inventory godoc
// @Summary      Inventario en poder de la cuadrilla
// @Tags         crews
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuadrilla"
// @Success      200  {array}   dto.CrewStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crews/{id}/inventory [get]
func (h *CrewHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
