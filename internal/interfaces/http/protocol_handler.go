package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/usecase"
)

// ProtocolHandler protocolos, sus pasos y sus pruebas asociadas.
type ProtocolHandler struct {
	uc *usecase.ProtocolUseCase
}

// NewProtocolHandler construye el handler.
func NewProtocolHandler(uc *usecase.ProtocolUseCase) *ProtocolHandler {
	return &ProtocolHandler{uc: uc}
}

// Create godoc
// @Summary      Crear protocolo
// @Tags         protocols
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProtocolRequest  true  "Datos del protocolo"
// @Success      201   {object}  dto.ProtocolResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/protocols [post]
func (h *ProtocolHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProtocolRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "prueba")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener protocolo con pasos y pruebas
// @Tags         protocols
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del protocolo"
// @Success      200  {object}  dto.ProtocolResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/protocols/{id} [get]
func (h *ProtocolHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "protocolo")
	}
	if out == nil {
		return notFound(c, "protocolo")
	}
	return c.JSON(out)
}

// Update actualización parcial del encabezado del protocolo.
func (h *ProtocolHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProtocolRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "protocolo")
	}
	if out == nil {
		return notFound(c, "protocolo")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar protocolos
// @Tags         protocols
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por nombre"
// @Param        active  query  bool    false  "Solo activos"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ProtocolListResponse
// @Router       /api/protocols [get]
func (h *ProtocolHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err, "protocolo")
	}
	return c.JSON(out)
}

// Delete elimina un protocolo; si hay lotes que lo usan responde 409.
func (h *ProtocolHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "protocolo")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetTestMethods godoc
// @Summary      Reemplazar pruebas del protocolo
// @Tags         protocols
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del protocolo"
// @Param        body  body  dto.SetMembersRequest  true  "IDs de pruebas"
// @Success      200   {object}  dto.ProtocolResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/protocols/{id}/test-methods [put]
func (h *ProtocolHandler) SetTestMethods(c *fiber.Ctx) error {
	var in dto.SetMembersRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetTestMethods(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "prueba")
	}
	if out == nil {
		return notFound(c, "protocolo")
	}
	return c.JSON(out)
}

// AddStep godoc
// @Summary      Agregar paso al protocolo
// @Description  El nombre del paso debe producir un código de barras único dentro del protocolo.
// @Tags         protocols
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del protocolo"
// @Param        body  body  dto.CreateProtocolStepRequest  true  "Datos del paso"
// @Success      201   {object}  dto.ProtocolStepResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/protocols/{id}/steps [post]
func (h *ProtocolHandler) AddStep(c *fiber.Ctx) error {
	var in dto.CreateProtocolStepRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.StepNumber < 1 {
		return validation(c, "name y step_number (>= 1) son requeridos")
	}
	out, err := h.uc.AddStep(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "protocolo")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStep actualización parcial de un paso.
func (h *ProtocolHandler) UpdateStep(c *fiber.Ctx) error {
	var in dto.UpdateProtocolStepRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStep(c.UserContext(), c.Params("id"), c.Params("stepId"), in)
	if err != nil {
		return respondError(c, err, "paso")
	}
	if out == nil {
		return notFound(c, "paso")
	}
	return c.JSON(out)
}

// DeleteStep elimina un paso sin ejecuciones registradas.
func (h *ProtocolHandler) DeleteStep(c *fiber.Ctx) error {
	if err := h.uc.DeleteStep(c.UserContext(), c.Params("id"), c.Params("stepId")); err != nil {
		return respondError(c, err, "paso")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
