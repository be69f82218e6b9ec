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

// LocationUseCase casos de uso CRUD para sedes de una organización.
type LocationUseCase struct {
	repo    repository.LocationRepository
	orgRepo repository.OrganizationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, orgRepo repository.OrganizationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, orgRepo: orgRepo}
}

// Create crea una sede; la organización debe existir.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if blank(in.OrganizationID) || blank(in.Code) || blank(in.Name) {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgRepo.GetByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	loc := &entity.Location{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Code:           strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:           strings.TrimSpace(in.Name),
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		PostalCode:     in.PostalCode,
		Phone:          in.Phone,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetByID obtiene una sede por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil || loc == nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Update actualiza una sede.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, id)
	if err != nil || loc == nil {
		return nil, err
	}
	if in.Code != nil {
		if blank(*in.Code) {
			return nil, domain.ErrInvalidInput
		}
		loc.Code = strings.ToUpper(strings.TrimSpace(*in.Code))
	}
	if in.Name != nil && blank(*in.Name) {
		return nil, domain.ErrInvalidInput
	}
	setString(&loc.Name, in.Name)
	setString(&loc.Address, in.Address)
	setString(&loc.City, in.City)
	setString(&loc.State, in.State)
	setString(&loc.PostalCode, in.PostalCode)
	setString(&loc.Phone, in.Phone)
	if in.IsActive != nil {
		loc.IsActive = *in.IsActive
	}
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// List lista sedes (filtro organization_id opcional).
func (uc *LocationUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.LocationListResponse, error) {
	f := toFilter(q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items, Page: dto.NewPage(f.Limit, f.Offset, total)}, nil
}

// Delete elimina una sede.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		Code:           l.Code,
		Name:           l.Name,
		Address:        l.Address,
		City:           l.City,
		State:          l.State,
		PostalCode:     l.PostalCode,
		Phone:          l.Phone,
		IsActive:       l.IsActive,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
