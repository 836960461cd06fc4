package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// EquipmentHandler maneja el registro de equipos serializados (protegido). Las
// transiciones asignar/instalar/devolver van por /inventory/movements.
type EquipmentHandler struct {
	uc *inventory.EquipmentUseCase
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *inventory.EquipmentUseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc}
}

func toInstanceResponse(e *entity.EquipmentInstance) dto.InstanceResponse {
	resp := dto.InstanceResponse{
		ID:       e.ID,
		ItemID:   e.ItemID,
		UniqueID: e.UniqueID,
		Serial:   e.Serial,
		MAC:      e.MAC,
		Status:   e.Status,
		Notes:    e.Notes,
	}
	if e.AssignedTo != nil {
		crewID := e.AssignedTo.CrewID
		assignedAt := e.AssignedTo.AssignedAt
		resp.CrewID = &crewID
		resp.AssignedAt = &assignedAt
	}
	if e.InstalledAt != nil {
		orderID := e.InstalledAt.OrderID
		installedAt := e.InstalledAt.InstalledAt
		resp.OrderID = &orderID
		resp.InstalledAt = &installedAt
	}
	return resp
}

// Register godoc
// @Summary      Registrar lote de equipos serializados
// @Description  Todo o nada: cualquier unique_id en colisión rechaza el lote completo.
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterInstancesRequest  true  "item_id + instances"
// @Success      201   {array}   dto.InstanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipment [post]
func (h *EquipmentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterInstancesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	instances, err := h.uc.RegisterInstances(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InstanceResponse, 0, len(instances))
	for _, inst := range instances {
		out = append(out, toInstanceResponse(inst))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Find godoc
// @Summary      Buscar equipo por unique_id, serial o MAC
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  true  "identificador exacto (case-insensitive)"
// @Success      200  {object}  dto.InstanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/search [get]
func (h *EquipmentHandler) Find(c *fiber.Ctx) error {
	inst, err := h.uc.FindInstance(c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInstanceResponse(inst))
}

// List godoc
// @Summary      Listar equipos
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "filtrar por ítem"
// @Param        status   query  string  false  "in_stock|assigned|installed|damaged|retired"
// @Success      200  {array}   dto.InstanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/equipment [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	instances, err := h.uc.ListInstances(c.Query("item_id"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InstanceResponse, 0, len(instances))
	for _, inst := range instances {
		out = append(out, toInstanceResponse(inst))
	}
	return c.JSON(out)
}

// MarkStatus godoc
// @Summary      Marcar equipo como dañado o retirado
// @Description  Solo estados terminales; el conteo del que salga (almacén o
//
//	cuadrilla) se descuenta con una fila ADJUSTMENT.
//
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        uniqueId  path  string                  true  "unique_id del equipo"
// @Param        body      body  dto.MarkInstanceRequest true  "status (damaged|retired) + reason"
// @Success      200  {object}  dto.InstanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/equipment/{uniqueId}/status [put]
func (h *EquipmentHandler) MarkStatus(c *fiber.Ctx) error {
	var in dto.MarkInstanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inst, err := h.uc.MarkUnusable(c.Context(), actorFrom(c), c.Params("uniqueId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toInstanceResponse(inst))
}

// Delete godoc
// @Summary      Borrar equipo
// @Description  Solo desde in_stock; deja la fila ADJUSTMENT que descuenta el conteo.
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        uniqueId  path  string  true  "unique_id del equipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/equipment/{uniqueId} [delete]
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteInstance(c.Context(), actorFrom(c), c.Params("uniqueId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
