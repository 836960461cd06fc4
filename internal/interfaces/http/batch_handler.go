package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// BatchHandler maneja el ciclo de vida de bobinas (protegido). Las
// transferencias almacén↔cuadrilla no están aquí: van por /inventory/movements.
type BatchHandler struct {
	uc *inventory.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *inventory.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

func toBatchResponse(b *entity.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:         b.ID,
		Code:       b.Code,
		ItemID:     b.ItemID,
		InitialQty: b.InitialQty,
		CurrentQty: b.CurrentQty,
		Unit:       b.Unit,
		Status:     b.Status,
		Location:   b.Location,
		CrewID:     b.CrewID,
		AcquiredAt: b.AcquiredAt,
	}
}

// Create godoc
// @Summary      Dar de alta una bobina
// @Description  La cantidad inicial cuenta como entrada de stock del ítem.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "batch_code, item_id, initial_quantity"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.CreateBatch(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(batch))
}

// GetByCode godoc
// @Summary      Obtener bobina por código
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código de bobina"
// @Success      200   {object}  dto.BatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{code} [get]
func (h *BatchHandler) GetByCode(c *fiber.Ctx) error {
	batch, err := h.uc.GetBatch(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// List godoc
// @Summary      Listar bobinas por ítem o cuadrilla
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "bobinas del ítem"
// @Param        crew_id  query  string  false  "bobinas en poder de la cuadrilla"
// @Success      200  {array}   dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	crewID := c.Query("crew_id")
	var (
		batches []*entity.Batch
		err     error
	)
	switch {
	case itemID != "":
		batches, err = h.uc.ListByItem(itemID)
	case crewID != "":
		batches, err = h.uc.ListByCrew(crewID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id o crew_id requerido"})
	}
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toBatchResponse(b))
	}
	return c.JSON(out)
}

// AddQuantity godoc
// @Summary      Recargar una bobina en almacén
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                      true  "código de bobina"
// @Param        body  body  dto.AddBatchQuantityRequest true  "quantity_to_add > 0"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{code}/quantity [put]
func (h *BatchHandler) AddQuantity(c *fiber.Ctx) error {
	var in dto.AddBatchQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.AddQuantity(c.Context(), actorFrom(c), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Adjust godoc
// @Summary      Corrección administrativa de una bobina
// @Description  Fija la cantidad restante (y opcionalmente reasigna el ítem).
//
//	Solo admin; deja filas ADJUSTMENT que mantienen el libro cuadrado.
//
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                 true  "código de bobina"
// @Param        body  body  dto.AdjustBatchRequest true  "current_quantity, reason"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{code} [put]
func (h *BatchHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.AdjustBatch(c.Context(), actorFrom(c), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Delete godoc
// @Summary      Borrar una bobina
// @Description  Una bobina con cantidad en poder de una cuadrilla no se borra:
//
//	primero hay que devolverla. Cantidad restante en almacén se
//	descuenta con una fila ADJUSTMENT.
//
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código de bobina"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{code} [delete]
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteBatch(c.Context(), actorFrom(c), c.Params("code")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
