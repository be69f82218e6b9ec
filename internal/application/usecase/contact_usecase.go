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

// ContactUseCase casos de uso CRUD para contactos.
type ContactUseCase struct {
	repo    repository.ContactRepository
	orgRepo repository.OrganizationRepository
	locRepo repository.LocationRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository, orgRepo repository.OrganizationRepository, locRepo repository.LocationRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo, orgRepo: orgRepo, locRepo: locRepo}
}

// Create crea un contacto. Si trae sede, debe pertenecer a la misma organización.
func (uc *ContactUseCase) Create(ctx context.Context, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if blank(in.OrganizationID) || blank(in.FirstName) {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgRepo.GetByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	locationID, err := uc.checkLocation(ctx, org.ID, in.LocationID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Contact{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		LocationID:     locationID,
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          in.Phone,
		Title:          in.Title,
		IsPrimary:      in.IsPrimary,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// GetByID obtiene un contacto por ID.
func (uc *ContactUseCase) GetByID(ctx context.Context, id string) (*dto.ContactResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// Update actualiza un contacto. location_id "" desvincula la sede.
func (uc *ContactUseCase) Update(ctx context.Context, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	if in.LocationID != nil {
		if c.LocationID, err = uc.checkLocation(ctx, c.OrganizationID, in.LocationID); err != nil {
			return nil, err
		}
	}
	if in.FirstName != nil && blank(*in.FirstName) {
		return nil, domain.ErrInvalidInput
	}
	setString(&c.FirstName, in.FirstName)
	setString(&c.LastName, in.LastName)
	setString(&c.Email, in.Email)
	setString(&c.Phone, in.Phone)
	setString(&c.Title, in.Title)
	if in.IsPrimary != nil {
		c.IsPrimary = *in.IsPrimary
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

// List lista contactos (filtros organization_id y location_id).
func (uc *ContactUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.ContactListResponse, error) {
	f := toFilter(q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContactResponse(c))
	}
	return &dto.ContactListResponse{Items: items, Page: dto.NewPage(f.Limit, f.Offset, total)}, nil
}

// Delete elimina un contacto.
func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ContactUseCase) checkLocation(ctx context.Context, orgID string, locationID *string) (*string, error) {
	if locationID == nil || blank(*locationID) {
		return nil, nil
	}
	loc, err := uc.locRepo.GetByID(ctx, *locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if loc.OrganizationID != orgID {
		return nil, domain.ErrInvalidInput
	}
	id := loc.ID
	return &id, nil
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		LocationID:     c.LocationID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		FullName:       c.FullName(),
		Email:          c.Email,
		Phone:          c.Phone,
		Title:          c.Title,
		IsPrimary:      c.IsPrimary,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
