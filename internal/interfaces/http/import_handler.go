package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/importing"
)

// ImportHandler cargas masivas de órdenes (CSV) y catálogo (TSV).
type ImportHandler struct {
	im *importing.Importer
}

// NewImportHandler construye el handler.
func NewImportHandler(im *importing.Importer) *ImportHandler {
	return &ImportHandler{im: im}
}

// Orders godoc
// @Summary      Importar órdenes (CSV)
// @Description  Columnas: organization_code, location_code, sample_id, sample_type, test_method_code, collected_at, notes. Las filas inválidas se reportan como advertencias.
// @Tags         orders
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/import [post]
func (h *ImportHandler) Orders(c *fiber.Ctx) error {
	data, err := readUpload(c)
	if err != nil || len(data) == 0 {
		return validation(c, "archivo requerido")
	}
	out, err := h.im.ImportOrders(c.UserContext(), data)
	if err != nil {
		return respondError(c, err, "orden")
	}
	return c.JSON(out)
}

// Catalog godoc
// @Summary      Importar pruebas y paneles (TSV)
// @Description  Columnas: record_type (METHOD|PANEL), code, name, description, specimen_type, turnaround_days, price, members.
// @Tags         test-methods
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo TSV"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/test-methods/import [post]
func (h *ImportHandler) Catalog(c *fiber.Ctx) error {
	data, err := readUpload(c)
	if err != nil || len(data) == 0 {
		return validation(c, "archivo requerido")
	}
	out, err := h.im.ImportCatalog(c.UserContext(), data)
	if err != nil {
		return respondError(c, err, "prueba")
	}
	return c.JSON(out)
}
