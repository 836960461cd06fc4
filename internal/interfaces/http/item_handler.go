package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// ItemHandler maneja el catálogo de ítems (protegido).
type ItemHandler struct {
	uc *inventory.CatalogUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.CatalogUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

func toItemResponse(item *entity.InventoryItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:           item.ID,
		Code:         item.Code,
		Type:         item.Type,
		Description:  item.Description,
		Unit:         item.Unit,
		CurrentStock: item.CurrentStock,
		MinStock:     item.MinStock,
		LowStock:     item.LowStock(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear ítem de catálogo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "code, type, unit, min_stock, initial_stock (prohibido para equipment)"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// List godoc
// @Summary      Listar catálogo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	items, err := h.uc.ListItems(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Ítems con stock bajo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem por ID o código
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID (UUID) o código de catálogo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Update godoc
// @Summary      Editar ítem
// @Description  current_stock no se acepta por esta vía: el stock solo cambia vía movimientos.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a editar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toItemResponse(item))
}

// Delete godoc
// @Summary      Borrar ítem
// @Description  Con bobinas dependientes responde 409 listando sus códigos salvo
//
//	force=true, que las borra en cascada. Equipos registrados o stock
//	en cuadrillas bloquean el borrado siempre.
//
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del ítem"
// @Param        force  query  bool    false  "borrar bobinas dependientes en cascada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	force := c.QueryBool("force")
	if err := h.uc.DeleteItem(c.Context(), c.Params("id"), force); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
