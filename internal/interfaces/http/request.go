package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
)

// listQuery lee limit/offset y los filtros comunes del query string.
func listQuery(c *fiber.Ctx) dto.ListQuery {
	q := dto.ListQuery{
		PageRequest:    pageRequest(c),
		Query:          c.Query("q"),
		OrganizationID: c.Query("organization_id"),
		LocationID:     c.Query("location_id"),
		ProtocolID:     c.Query("protocol_id"),
		BatchID:        c.Query("batch_id"),
		Status:         c.Query("status"),
		ActiveOnly:     c.QueryBool("active", false),
	}
	return q
}

func pageRequest(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// readUpload acepta multipart (campo "file") o el archivo crudo en el cuerpo.
func readUpload(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	body := c.Body()
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

// sendFile responde un binario como descarga.
func sendFile(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
