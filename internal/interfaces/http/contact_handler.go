package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/usecase"
)

// ContactHandler contactos de las organizaciones (opcionalmente ligados a una sede).
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContactRequest  true  "Datos del contacto"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.OrganizationID == "" || in.FirstName == "" {
		return validation(c, "organization_id y first_name son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "organización o sede")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID contacto por ID.
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "contacto")
	}
	if out == nil {
		return notFound(c, "contacto")
	}
	return c.JSON(out)
}

// Update actualización parcial; location_id vacío desliga la sede.
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "contacto")
	}
	if out == nil {
		return notFound(c, "contacto")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar contactos
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        organization_id  query  string  false  "Filtrar por organización"
// @Param        location_id      query  string  false  "Filtrar por sede"
// @Param        q                query  string  false  "Búsqueda por nombre o email"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200              {object}  dto.ContactListResponse
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), listQuery(c))
	if err != nil {
		return respondError(c, err, "contacto")
	}
	return c.JSON(out)
}

// Delete elimina un contacto.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "contacto")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
