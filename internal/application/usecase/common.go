package usecase

import (
	"strings"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// toFilter traduce la query HTTP a filtro de repositorio aplicando límites de página.
func toFilter(q dto.ListQuery) repository.ListFilter {
	q.DefaultPage()
	return repository.ListFilter{
		Query:          strings.TrimSpace(q.Query),
		OrganizationID: q.OrganizationID,
		LocationID:     q.LocationID,
		ProtocolID:     q.ProtocolID,
		BatchID:        q.BatchID,
		Status:         q.Status,
		ActiveOnly:     q.ActiveOnly,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
