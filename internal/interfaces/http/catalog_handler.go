package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/usecase"
)

// TestMethodHandler catálogo de pruebas.
type TestMethodHandler struct {
	uc *usecase.TestMethodUseCase
}

// NewTestMethodHandler construye el handler.
func NewTestMethodHandler(uc *usecase.TestMethodUseCase) *TestMethodHandler {
	return &TestMethodHandler{uc: uc}
}

// Create godoc
// @Summary      Crear prueba del catálogo
// @Tags         test-methods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTestMethodRequest  true  "Datos de la prueba"
// @Success      201   {object}  dto.TestMethodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/test-methods [post]
func (h *TestMethodHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTestMethodRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Code == "" || in.Name == "" {
		return validation(c, "code y name son requeridos")
	}
	if in.Price.IsNegative() || in.TurnaroundDays < 0 {
		return validation(c, "price y turnaround_days no pueden ser negativos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "prueba")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener prueba por ID
// @Tags         test-methods
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la prueba"
// @Success      200  {object}  dto.TestMethodResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/test-methods/{id} [get]
func (h *TestMethodHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "prueba")
	}
	if out == nil {
		return notFound(c, "prueba")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar prueba (parcial)
// @Tags         test-methods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la prueba"
// @Param        body  body  dto.UpdateTestMethodRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TestMethodResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/test-methods/{id} [put]
func (h *TestMethodHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTestMethodRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "prueba")
	}
	if out == nil {
		return notFound(c, "prueba")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pruebas
// @Tags         test-methods
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por código, nombre o categoría"
// @Param        active  query  bool    false  "Solo activas"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.TestMethodListResponse
// @Router       /api/test-methods [get]
func (h *TestMethodHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err, "prueba")
	}
	return c.JSON(out)
}

// Delete elimina una prueba; si la usan paneles, protocolos u órdenes responde 409.
func (h *TestMethodHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "prueba")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TestPanelHandler paneles (agrupaciones de pruebas).
type TestPanelHandler struct {
	uc *usecase.TestPanelUseCase
}

// NewTestPanelHandler construye el handler.
func NewTestPanelHandler(uc *usecase.TestPanelUseCase) *TestPanelHandler {
	return &TestPanelHandler{uc: uc}
}

// Create godoc
// @Summary      Crear panel
// @Tags         test-panels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTestPanelRequest  true  "Datos del panel y sus pruebas"
// @Success      201   {object}  dto.TestPanelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/test-panels [post]
func (h *TestPanelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTestPanelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Code == "" || in.Name == "" {
		return validation(c, "code y name son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "prueba")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID panel con sus pruebas.
func (h *TestPanelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "panel")
	}
	if out == nil {
		return notFound(c, "panel")
	}
	return c.JSON(out)
}

// Update actualización parcial sin tocar miembros.
func (h *TestPanelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTestPanelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "panel")
	}
	if out == nil {
		return notFound(c, "panel")
	}
	return c.JSON(out)
}

// SetMembers godoc
// @Summary      Reemplazar pruebas del panel
// @Tags         test-panels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del panel"
// @Param        body  body  dto.SetMembersRequest  true  "IDs de pruebas en orden"
// @Success      200   {object}  dto.TestPanelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/test-panels/{id}/members [put]
func (h *TestPanelHandler) SetMembers(c *fiber.Ctx) error {
	var in dto.SetMembersRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetMembers(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "prueba")
	}
	if out == nil {
		return notFound(c, "panel")
	}
	return c.JSON(out)
}

// List paneles paginados.
func (h *TestPanelHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err, "panel")
	}
	return c.JSON(out)
}

// Delete elimina un panel y sus filas de miembros.
func (h *TestPanelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "panel")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
