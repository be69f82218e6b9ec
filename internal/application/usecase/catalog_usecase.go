package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
)

// TestMethodUseCase casos de uso CRUD del catálogo de pruebas.
type TestMethodUseCase struct {
	repo repository.TestMethodRepository
}

// NewTestMethodUseCase construye el caso de uso.
func NewTestMethodUseCase(repo repository.TestMethodRepository) *TestMethodUseCase {
	return &TestMethodUseCase{repo: repo}
}

// Create crea una prueba. Código duplicado devuelve ErrDuplicate (desde el repositorio).
func (uc *TestMethodUseCase) Create(ctx context.Context, in dto.CreateTestMethodRequest) (*dto.TestMethodResponse, error) {
	if blank(in.Code) || blank(in.Name) || in.TurnaroundDays < 0 || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	m := &entity.TestMethod{
		ID:             uuid.New().String(),
		Code:           strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Category:       in.Category,
		SpecimenType:   in.SpecimenType,
		TurnaroundDays: in.TurnaroundDays,
		Price:          in.Price,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return ToTestMethodResponse(m), nil
}

// GetByID obtiene una prueba por ID.
func (uc *TestMethodUseCase) GetByID(ctx context.Context, id string) (*dto.TestMethodResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	return ToTestMethodResponse(m), nil
}

// Update actualiza una prueba.
func (uc *TestMethodUseCase) Update(ctx context.Context, id string, in dto.UpdateTestMethodRequest) (*dto.TestMethodResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	if in.Code != nil {
		if blank(*in.Code) {
			return nil, domain.ErrInvalidInput
		}
		m.Code = strings.ToUpper(strings.TrimSpace(*in.Code))
	}
	if in.Name != nil && blank(*in.Name) {
		return nil, domain.ErrInvalidInput
	}
	setString(&m.Name, in.Name)
	setString(&m.Description, in.Description)
	setString(&m.Category, in.Category)
	setString(&m.SpecimenType, in.SpecimenType)
	if in.TurnaroundDays != nil {
		if *in.TurnaroundDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		m.TurnaroundDays = *in.TurnaroundDays
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		m.Price = *in.Price
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return ToTestMethodResponse(m), nil
}

// List lista el catálogo.
func (uc *TestMethodUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.TestMethodListResponse, error) {
	f := toFilter(q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TestMethodResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToTestMethodResponse(m))
	}
	return &dto.TestMethodListResponse{Items: items, Page: dto.NewPage(f.Limit, f.Offset, total)}, nil
}

// Delete elimina una prueba; referenciada por órdenes devuelve ErrConflict.
func (uc *TestMethodUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ToTestMethodResponse convierte la entidad a DTO.
func ToTestMethodResponse(m *entity.TestMethod) *dto.TestMethodResponse {
	return &dto.TestMethodResponse{
		ID:             m.ID,
		Code:           m.Code,
		Name:           m.Name,
		Description:    m.Description,
		Category:       m.Category,
		SpecimenType:   m.SpecimenType,
		TurnaroundDays: m.TurnaroundDays,
		Price:          m.Price,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// TestPanelUseCase casos de uso CRUD de paneles y sus miembros.
type TestPanelUseCase struct {
	repo       repository.TestPanelRepository
	methodRepo repository.TestMethodRepository
}

// NewTestPanelUseCase construye el caso de uso.
func NewTestPanelUseCase(repo repository.TestPanelRepository, methodRepo repository.TestMethodRepository) *TestPanelUseCase {
	return &TestPanelUseCase{repo: repo, methodRepo: methodRepo}
}

// Create crea un panel con sus miembros iniciales.
func (uc *TestPanelUseCase) Create(ctx context.Context, in dto.CreateTestPanelRequest) (*dto.TestPanelResponse, error) {
	if blank(in.Code) || blank(in.Name) {
		return nil, domain.ErrInvalidInput
	}
	members, err := checkTestMethods(ctx, uc.methodRepo, in.TestMethodIDs)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.TestPanel{
		ID:            uuid.New().String(),
		Code:          strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		IsActive:      true,
		TestMethodIDs: members,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toTestPanelResponse(p), nil
}

// GetByID obtiene un panel con sus miembros.
func (uc *TestPanelUseCase) GetByID(ctx context.Context, id string) (*dto.TestPanelResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toTestPanelResponse(p), nil
}

// Update actualiza los datos del panel (no los miembros).
func (uc *TestPanelUseCase) Update(ctx context.Context, id string, in dto.UpdateTestPanelRequest) (*dto.TestPanelResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if in.Code != nil {
		if blank(*in.Code) {
			return nil, domain.ErrInvalidInput
		}
		p.Code = strings.ToUpper(strings.TrimSpace(*in.Code))
	}
	if in.Name != nil && blank(*in.Name) {
		return nil, domain.ErrInvalidInput
	}
	setString(&p.Name, in.Name)
	setString(&p.Description, in.Description)
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toTestPanelResponse(p), nil
}

// SetMembers reemplaza las pruebas del panel.
func (uc *TestPanelUseCase) SetMembers(ctx context.Context, id string, in dto.SetMembersRequest) (*dto.TestPanelResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	members, err := checkTestMethods(ctx, uc.methodRepo, in.TestMethodIDs)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetMembers(ctx, id, members); err != nil {
		return nil, err
	}
	p.TestMethodIDs = members
	return toTestPanelResponse(p), nil
}

// List lista paneles.
func (uc *TestPanelUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.TestPanelListResponse, error) {
	f := toFilter(q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TestPanelResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toTestPanelResponse(p))
	}
	return &dto.TestPanelListResponse{Items: items, Page: dto.NewPage(f.Limit, f.Offset, total)}, nil
}

// Delete elimina un panel y sus miembros.
func (uc *TestPanelUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// checkTestMethods valida que existan las pruebas y elimina repetidos conservando el orden.
func checkTestMethods(ctx context.Context, repo repository.TestMethodRepository, ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		m, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
		out = append(out, m.ID)
	}
	return out, nil
}

func toTestPanelResponse(p *entity.TestPanel) *dto.TestPanelResponse {
	ids := p.TestMethodIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.TestPanelResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		IsActive:      p.IsActive,
		TestMethodIDs: ids,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
