package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/workflow"
)

// WorkflowHandler inicio y fin de pasos de protocolo sobre un lote, por ID o por escaneo.
type WorkflowHandler struct {
	transitions *workflow.TransitionUseCase
	scans       *workflow.ScanUseCase
}

// NewWorkflowHandler construye el handler.
func NewWorkflowHandler(transitions *workflow.TransitionUseCase, scans *workflow.ScanUseCase) *WorkflowHandler {
	return &WorkflowHandler{transitions: transitions, scans: scans}
}

// Start godoc
// @Summary      Iniciar paso
// @Description  Crea la ejecución In Progress; si ya estaba iniciada re-sella inicio y usuario sobre la misma fila.
// @Tags         workflow
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del lote"
// @Param        stepId  path  string  true  "ID del paso"
// @Success      200     {object}  dto.ExecutionResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/steps/{stepId}/start [post]
func (h *WorkflowHandler) Start(c *fiber.Ctx) error {
	exec, err := h.transitions.Start(c.UserContext(), c.Params("id"), c.Params("stepId"), GetUserID(c))
	if err != nil {
		return respondError(c, err, "lote o paso")
	}
	return c.JSON(workflow.ToExecutionResponse(exec))
}

// Stop godoc
// @Summary      Finalizar paso
// @Description  Solo desde In Progress. Un paso nunca iniciado responde 409 NOT_STARTED.
// @Tags         workflow
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                 true   "ID del lote"
// @Param        stepId  path  string                 true   "ID del paso"
// @Param        body    body  dto.TransitionRequest  false  "Notas"
// @Success      200     {object}  dto.ExecutionResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/steps/{stepId}/stop [post]
func (h *WorkflowHandler) Stop(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	exec, err := h.transitions.Stop(c.UserContext(), c.Params("id"), c.Params("stepId"), GetUserID(c), in.Notes)
	if err != nil {
		return respondError(c, err, "lote o paso")
	}
	return c.JSON(workflow.ToExecutionResponse(exec))
}

// Scan godoc
// @Summary      Procesar código escaneado
// @Description  BATCH_<lote> muestra el tablero; START_<PASO>_<lote> y STOP_<PASO>_<lote> ejecutan la transición.
// @Tags         workflow
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Código leído"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *WorkflowHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Code == "" {
		return validation(c, "code es requerido")
	}
	out, err := h.scans.Scan(c.UserContext(), in.Code, GetUserID(c), in.Notes)
	if err != nil {
		return respondError(c, err, "lote o paso")
	}
	return c.JSON(out)
}
