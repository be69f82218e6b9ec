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

// ExportLimit tope de filas de una exportación de órdenes.
const ExportLimit = 10000

// OrderUseCase casos de uso de órdenes (muestra x prueba).
type OrderUseCase struct {
	repo       repository.OrderRepository
	orgRepo    repository.OrganizationRepository
	locRepo    repository.LocationRepository
	contRepo   repository.ContactRepository
	methodRepo repository.TestMethodRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	repo repository.OrderRepository,
	orgRepo repository.OrganizationRepository,
	locRepo repository.LocationRepository,
	contRepo repository.ContactRepository,
	methodRepo repository.TestMethodRepository,
) *OrderUseCase {
	return &OrderUseCase{repo: repo, orgRepo: orgRepo, locRepo: locRepo, contRepo: contRepo, methodRepo: methodRepo}
}

// Create registra una orden Received. Sede y contacto deben ser de la organización.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if blank(in.OrganizationID) || blank(in.SampleID) || blank(in.TestMethodID) {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityRoutine
	}
	if priority != entity.PriorityRoutine && priority != entity.PriorityStat {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgRepo.GetByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	method, err := uc.methodRepo.GetByID(ctx, in.TestMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrNotFound
	}
	if in.LocationID != nil && !blank(*in.LocationID) {
		loc, err := uc.locRepo.GetByID(ctx, *in.LocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil || loc.OrganizationID != org.ID {
			return nil, domain.ErrInvalidInput
		}
	} else {
		in.LocationID = nil
	}
	if in.ContactID != nil && !blank(*in.ContactID) {
		c, err := uc.contRepo.GetByID(ctx, *in.ContactID)
		if err != nil {
			return nil, err
		}
		if c == nil || c.OrganizationID != org.ID {
			return nil, domain.ErrInvalidInput
		}
	} else {
		in.ContactID = nil
	}

	now := time.Now()
	o := &entity.Order{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		LocationID:     in.LocationID,
		ContactID:      in.ContactID,
		SampleID:       strings.TrimSpace(in.SampleID),
		SampleType:     in.SampleType,
		TestMethodID:   method.ID,
		Status:         entity.OrderStatusReceived,
		Priority:       priority,
		CollectedAt:    in.CollectedAt,
		ReceivedAt:     now,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// Update actualiza estado, prioridad y datos de la muestra.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	if in.Status != nil {
		if !entity.ValidOrderStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		// Received exige que la orden no esté en un lote; Batched exige lo contrario.
		if *in.Status == entity.OrderStatusReceived {
			o.BatchID = nil
		}
		if *in.Status == entity.OrderStatusBatched && o.BatchID == nil {
			return nil, domain.ErrInvalidInput
		}
		o.Status = *in.Status
	}
	if in.Priority != nil {
		if *in.Priority != entity.PriorityRoutine && *in.Priority != entity.PriorityStat {
			return nil, domain.ErrInvalidInput
		}
		o.Priority = *in.Priority
	}
	setString(&o.SampleType, in.SampleType)
	setString(&o.Notes, in.Notes)
	if in.CollectedAt != nil {
		o.CollectedAt = in.CollectedAt
	}
	o.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// List lista órdenes (filtros organization_id, location_id, batch_id, status, q sobre sample_id).
func (uc *OrderUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.OrderListResponse, error) {
	f := toFilter(q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.OrderListResponse{Items: toOrderResponses(list), Page: dto.NewPage(f.Limit, f.Offset, total)}, nil
}

// ListForExport lista hasta ExportLimit órdenes con los mismos filtros que List.
func (uc *OrderUseCase) ListForExport(ctx context.Context, q dto.ListQuery) ([]dto.OrderResponse, error) {
	f := toFilter(q)
	f.Limit, f.Offset = ExportLimit, 0
	list, _, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// Delete elimina una orden.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return items
}

// ToOrderResponse convierte la entidad a DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:             o.ID,
		OrganizationID: o.OrganizationID,
		LocationID:     o.LocationID,
		ContactID:      o.ContactID,
		SampleID:       o.SampleID,
		SampleType:     o.SampleType,
		TestMethodID:   o.TestMethodID,
		BatchID:        o.BatchID,
		Status:         o.Status,
		Priority:       o.Priority,
		CollectedAt:    o.CollectedAt,
		ReceivedAt:     o.ReceivedAt,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
