package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/reporting"
	"github.com/jhoicas/LabOps-api/internal/application/usecase"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/xlsx"
)

// OrderHandler órdenes (muestra x prueba) y su exportación.
type OrderHandler struct {
	uc      *usecase.OrderUseCase
	reports *reporting.ReportUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, reports *reporting.ReportUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Muestra, prueba y organización"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.OrganizationID == "" || in.SampleID == "" || in.TestMethodID == "" {
		return validation(c, "organization_id, sample_id y test_method_id son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "organización, sede, contacto o prueba")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "orden")
	}
	if out == nil {
		return notFound(c, "orden")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden (parcial, incluye estado)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "orden")
	}
	if out == nil {
		return notFound(c, "orden")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        organization_id  query  string  false  "Filtrar por organización"
// @Param        location_id      query  string  false  "Filtrar por sede"
// @Param        batch_id         query  string  false  "Filtrar por lote"
// @Param        status           query  string  false  "Received, Batched, Completed o Cancelled"
// @Param        q                query  string  false  "Búsqueda por muestra"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200              {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err, "orden")
	}
	return c.JSON(out)
}

// Delete elimina una orden.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "orden")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportXLSX órdenes filtradas como List, en un libro de Excel.
func (h *OrderHandler) ExportXLSX(c *fiber.Ctx) error {
	data, name, err := h.reports.OrdersXLSX(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err, "orden")
	}
	return sendFile(c, data, xlsx.ContentType, name)
}
