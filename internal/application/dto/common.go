package dto

import "github.com/jhoicas/LabOps-api/pkg/pagination"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto y topes a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	p.Limit, p.Offset = pagination.Normalize(p.Limit, p.Offset)
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// NewPage arma los metadatos de página a partir del total filtrado.
func NewPage(limit, offset, total int) PageResponse {
	return PageResponse{Limit: limit, Offset: offset, Total: total, Pages: pagination.PageCount(total, limit)}
}

// ListQuery filtros comunes de listados recibidos por query string.
type ListQuery struct {
	PageRequest
	Query          string `query:"q"`
	OrganizationID string `query:"organization_id"`
	LocationID     string `query:"location_id"`
	ProtocolID     string `query:"protocol_id"`
	BatchID        string `query:"batch_id"`
	Status         string `query:"status"`
	ActiveOnly     bool   `query:"active"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
