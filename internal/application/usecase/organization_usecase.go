package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// OrganizationUseCase casos de uso CRUD para organizaciones cliente.
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// Create crea una organización. El código se normaliza a mayúsculas.
func (uc *OrganizationUseCase) Create(ctx context.Context, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if blank(in.Code) || blank(in.Name) {
		return nil, domain.ErrInvalidInput
	}
	orgType := in.Type
	if orgType == "" {
		orgType = entity.OrgTypeClientLab
	}
	if !entity.ValidOrgType(orgType) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:      strings.TrimSpace(in.Name),
		Type:      orgType,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// GetByID obtiene una organización por ID; nil si no existe.
func (uc *OrganizationUseCase) GetByID(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// Update actualiza los campos enviados; nil si no existe.
func (uc *OrganizationUseCase) Update(ctx context.Context, id string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}
	if in.Code != nil {
		if blank(*in.Code) {
			return nil, domain.ErrInvalidInput
		}
		org.Code = strings.ToUpper(strings.TrimSpace(*in.Code))
	}
	if in.Name != nil {
		if blank(*in.Name) {
			return nil, domain.ErrInvalidInput
		}
		setString(&org.Name, in.Name)
	}
	if in.Type != nil {
		if !entity.ValidOrgType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		org.Type = *in.Type
	}
	setString(&org.Email, in.Email)
	setString(&org.Phone, in.Phone)
	setString(&org.Address, in.Address)
	if in.IsActive != nil {
		org.IsActive = *in.IsActive
	}
	org.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// List lista organizaciones con filtro de texto y paginación.
func (uc *OrganizationUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.OrganizationListResponse, error) {
	f := toFilter(q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrganizationResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrganizationResponse(o))
	}
	return &dto.OrganizationListResponse{Items: items, Page: dto.NewPage(f.Limit, f.Offset, total)}, nil
}

// Delete elimina una organización. Con sedes, contactos u órdenes devuelve ErrConflict.
func (uc *OrganizationUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:        o.ID,
		Code:      o.Code,
		Name:      o.Name,
		Type:      o.Type,
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
