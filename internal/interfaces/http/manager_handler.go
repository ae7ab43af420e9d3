package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bazar-api/internal/application/dto"
	"github.com/tu-usuario/bazar-api/internal/application/usecase"
)

// ManagerHandler maneja el CRUD de encargados.
type ManagerHandler struct {
	uc *usecase.ManagerUseCase
}

// NewManagerHandler construye el handler.
func NewManagerHandler(uc *usecase.ManagerUseCase) *ManagerHandler {
	return &ManagerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear encargado
// @Tags         managers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateManagerRequest  true  "Datos del encargado"
// @Success      201  {object}  dto.ManagerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/managers [post]
func (h *ManagerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es obligatorio"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeMasterError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener encargado por ID
// @Tags         managers
// @Produce      json
// @Param        id  path  int  true  "ID del encargado"
// @Success      200  {object}  dto.ManagerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/managers/{id} [get]
func (h *ManagerHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeMasterError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "encargado no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar encargados
// @Tags         managers
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ManagerListResponse
// @Router       /api/managers [get]
func (h *ManagerHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return writeMasterError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar encargado
// @Tags         managers
// @Param        id  path  int  true  "ID del encargado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/managers/{id} [delete]
func (h *ManagerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeMasterError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
