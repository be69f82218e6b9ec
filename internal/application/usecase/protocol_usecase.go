package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
	"github.com/jhoicas/LabOps-api/pkg/barcode"
)

// ProtocolUseCase casos de uso de protocolos, sus pasos y las pruebas asociadas.
type ProtocolUseCase struct {
	repo       repository.ProtocolRepository
	stepRepo   repository.ProtocolStepRepository
	methodRepo repository.TestMethodRepository
	batchRepo  repository.BatchRepository
	codec      *barcode.Codec
}

// NewProtocolUseCase construye el caso de uso. batchRepo y codec validan que los pasos
// sigan siendo codificables para los lotes ya creados con el protocolo.
func NewProtocolUseCase(
	repo repository.ProtocolRepository,
	stepRepo repository.ProtocolStepRepository,
	methodRepo repository.TestMethodRepository,
	batchRepo repository.BatchRepository,
	codec *barcode.Codec,
) *ProtocolUseCase {
	return &ProtocolUseCase{repo: repo, stepRepo: stepRepo, methodRepo: methodRepo, batchRepo: batchRepo, codec: codec}
}

// Create crea un protocolo y, si vienen, asocia las pruebas.
func (uc *ProtocolUseCase) Create(ctx context.Context, in dto.CreateProtocolRequest) (*dto.ProtocolResponse, error) {
	if blank(in.Name) {
		return nil, domain.ErrInvalidInput
	}
	ids, err := checkTestMethods(ctx, uc.methodRepo, in.TestMethodIDs)
	if err != nil {
		return nil, err
	}
	version := strings.TrimSpace(in.Version)
	if version == "" {
		version = "1"
	}
	now := time.Now()
	p := &entity.Protocol{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Version:     version,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		if err := uc.repo.SetTestMethods(ctx, p.ID, ids); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(ctx, p.ID)
}

// GetByID obtiene el protocolo con pasos y pruebas embebidos.
func (uc *ProtocolUseCase) GetByID(ctx context.Context, id string) (*dto.ProtocolResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toProtocolResponse(p), nil
}

// Update actualiza los datos del protocolo.
func (uc *ProtocolUseCase) Update(ctx context.Context, id string, in dto.UpdateProtocolRequest) (*dto.ProtocolResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if in.Name != nil && blank(*in.Name) {
		return nil, domain.ErrInvalidInput
	}
	setString(&p.Name, in.Name)
	setString(&p.Description, in.Description)
	setString(&p.Version, in.Version)
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProtocolResponse(p), nil
}

// List lista protocolos (sin pasos embebidos).
func (uc *ProtocolUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.ProtocolListResponse, error) {
	f := toFilter(q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProtocolResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProtocolResponse(p))
	}
	return &dto.ProtocolListResponse{Items: items, Page: dto.NewPage(f.Limit, f.Offset, total)}, nil
}

// Delete elimina un protocolo; con lotes asociados devuelve ErrConflict.
func (uc *ProtocolUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// SetTestMethods reemplaza las pruebas asociadas.
func (uc *ProtocolUseCase) SetTestMethods(ctx context.Context, id string, in dto.SetMembersRequest) (*dto.ProtocolResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	ids, err := checkTestMethods(ctx, uc.methodRepo, in.TestMethodIDs)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetTestMethods(ctx, id, ids); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// AddStep agrega un paso. Número repetido o nombre que colisiona en el código de barras devuelve ErrDuplicate.
func (uc *ProtocolUseCase) AddStep(ctx context.Context, protocolID string, in dto.CreateProtocolStepRequest) (*dto.ProtocolStepResponse, error) {
	p, err := uc.repo.GetByID(ctx, protocolID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.StepNumber < 1 || in.ExpectedMinutes < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	st := &entity.ProtocolStep{
		ID:              uuid.New().String(),
		ProtocolID:      protocolID,
		StepNumber:      in.StepNumber,
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		ExpectedMinutes: in.ExpectedMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.checkStep(ctx, st); err != nil {
		return nil, err
	}
	if err := uc.stepRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	return toStepResponse(st), nil
}

// UpdateStep actualiza un paso del protocolo.
func (uc *ProtocolUseCase) UpdateStep(ctx context.Context, protocolID, stepID string, in dto.UpdateProtocolStepRequest) (*dto.ProtocolStepResponse, error) {
	st, err := uc.stepRepo.GetByID(ctx, stepID)
	if err != nil || st == nil || st.ProtocolID != protocolID {
		return nil, err
	}
	if in.StepNumber != nil {
		st.StepNumber = *in.StepNumber
	}
	setString(&st.Name, in.Name)
	setString(&st.Description, in.Description)
	if in.ExpectedMinutes != nil {
		st.ExpectedMinutes = *in.ExpectedMinutes
	}
	if st.StepNumber < 1 || st.ExpectedMinutes < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkStep(ctx, st); err != nil {
		return nil, err
	}
	st.UpdatedAt = time.Now()
	if err := uc.stepRepo.Update(ctx, st); err != nil {
		return nil, err
	}
	return toStepResponse(st), nil
}

// DeleteStep elimina un paso; con ejecuciones registradas devuelve ErrConflict.
func (uc *ProtocolUseCase) DeleteStep(ctx context.Context, protocolID, stepID string) error {
	st, err := uc.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return err
	}
	if st == nil || st.ProtocolID != protocolID {
		return domain.ErrNotFound
	}
	return uc.stepRepo.Delete(ctx, stepID)
}

// checkStep exige un token de paso único dentro del protocolo y codificable en START/STOP
// con el número de lote más largo que ya usa el protocolo.
func (uc *ProtocolUseCase) checkStep(ctx context.Context, st *entity.ProtocolStep) error {
	token := barcode.StepToken(st.Name)
	if token == "" || barcode.Validate(token) != nil {
		return fmt.Errorf("%w: nombre de paso no codificable", domain.ErrInvalidInput)
	}
	longest, err := uc.batchRepo.LongestNumber(ctx, st.ProtocolID)
	if err != nil {
		return err
	}
	if longest != "" {
		if _, err := uc.codec.EncodeStart(st.Name, longest); err != nil {
			return fmt.Errorf("%w: paso %q con lote %s: %v", domain.ErrInvalidInput, st.Name, longest, err)
		}
		if _, err := uc.codec.EncodeStop(st.Name, longest); err != nil {
			return fmt.Errorf("%w: paso %q con lote %s: %v", domain.ErrInvalidInput, st.Name, longest, err)
		}
	}
	steps, err := uc.stepRepo.ListByProtocol(ctx, st.ProtocolID)
	if err != nil {
		return err
	}
	for _, other := range steps {
		if other.ID == st.ID {
			continue
		}
		if other.StepNumber == st.StepNumber {
			return fmt.Errorf("%w: paso número %d", domain.ErrDuplicate, st.StepNumber)
		}
		if barcode.StepToken(other.Name) == token {
			return fmt.Errorf("%w: paso %s", domain.ErrDuplicate, token)
		}
	}
	return nil
}

func toStepResponse(s *entity.ProtocolStep) *dto.ProtocolStepResponse {
	return &dto.ProtocolStepResponse{
		ID:              s.ID,
		ProtocolID:      s.ProtocolID,
		StepNumber:      s.StepNumber,
		Name:            s.Name,
		StepToken:       barcode.StepToken(s.Name),
		Description:     s.Description,
		ExpectedMinutes: s.ExpectedMinutes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toProtocolResponse(p *entity.Protocol) *dto.ProtocolResponse {
	out := &dto.ProtocolResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Version:     p.Version,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i := range p.Steps {
		out.Steps = append(out.Steps, *toStepResponse(&p.Steps[i]))
	}
	for i := range p.TestMethods {
		out.TestMethods = append(out.TestMethods, *ToTestMethodResponse(&p.TestMethods[i]))
	}
	return out
}
