package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/reporting"
	"github.com/jhoicas/LabOps-api/internal/application/usecase"
	"github.com/jhoicas/LabOps-api/internal/infrastructure/xlsx"
)

// BatchHandler lotes: CRUD, asignación de órdenes, tablero y hojas de códigos.
type BatchHandler struct {
	uc      *usecase.BatchUseCase
	reports *reporting.ReportUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *usecase.BatchUseCase, reports *reporting.ReportUseCase) *BatchHandler {
	return &BatchHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Crear lote
// @Description  El número de lote debe ser codificable en Code 39; se pueden asignar órdenes Received al crear.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Número de lote, protocolo y órdenes"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.BatchNumber == "" || in.ProtocolID == "" {
		return validation(c, "batch_number y protocol_id son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "protocolo")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "lote")
	}
	if out == nil {
		return notFound(c, "lote")
	}
	return c.JSON(out)
}

// Update cambia número o notas; el estado se deriva de las ejecuciones.
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "lote")
	}
	if out == nil {
		return notFound(c, "lote")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        protocol_id  query  string  false  "Filtrar por protocolo"
// @Param        status       query  string  false  "Open, In Progress o Completed"
// @Param        q            query  string  false  "Búsqueda por número de lote"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.BatchListResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err, "lote")
	}
	return c.JSON(out)
}

// Delete elimina el lote y devuelve sus órdenes a Received.
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "lote")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignOrders godoc
// @Summary      Asignar órdenes al lote
// @Description  Solo se asignan órdenes en estado Received; las demás se ignoran.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del lote"
// @Param        body  body  dto.AssignOrdersRequest  true  "IDs de órdenes"
// @Success      200   {object}  dto.AssignOrdersResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/orders [post]
func (h *BatchHandler) AssignOrders(c *fiber.Ctx) error {
	var in dto.AssignOrdersRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.OrderIDs) == 0 {
		return validation(c, "order_ids es requerido")
	}
	out, err := h.uc.AssignOrders(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "lote")
	}
	return c.JSON(out)
}

// Board godoc
// @Summary      Tablero de avance del lote
// @Description  Una fila por paso del protocolo con su ejecución (Pending si no hay) y sus códigos de barras.
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del lote"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.BoardResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/board [get]
func (h *BatchHandler) Board(c *fiber.Ctx) error {
	out, err := h.uc.Board(c.UserContext(), c.Params("id"), pageRequest(c))
	if err != nil {
		return respondError(c, err, "lote")
	}
	return c.JSON(out)
}

// Barcodes godoc
// @Summary      Códigos de barras del lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BarcodeSheet
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/barcodes [get]
func (h *BatchHandler) Barcodes(c *fiber.Ctx) error {
	out, err := h.uc.Barcodes(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "lote")
	}
	return c.JSON(out)
}

// BarcodesPDF godoc
// @Summary      Hoja de códigos de barras (PDF)
// @Tags         batches
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/barcodes.pdf [get]
func (h *BatchHandler) BarcodesPDF(c *fiber.Ctx) error {
	data, name, err := h.reports.BarcodeSheetPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "lote")
	}
	return sendFile(c, data, "application/pdf", name)
}

// BoardXLSX tablero completo del lote como libro de Excel.
func (h *BatchHandler) BoardXLSX(c *fiber.Ctx) error {
	data, name, err := h.reports.BoardXLSX(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "lote")
	}
	return sendFile(c, data, xlsx.ContentType, name)
}
