package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/application/workflow"
	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
	"github.com/jhoicas/LabOps-api/pkg/barcode"
	"github.com/jhoicas/LabOps-api/pkg/pagination"
)

// BatchUseCase casos de uso de lotes: CRUD, asignación de órdenes, tablero y hoja de códigos.
type BatchUseCase struct {
	repo         repository.BatchRepository
	protocolRepo repository.ProtocolRepository
	stepRepo     repository.ProtocolStepRepository
	execRepo     repository.WorkflowExecutionRepository
	orderRepo    repository.OrderRepository
	codec        *barcode.Codec
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	repo repository.BatchRepository,
	protocolRepo repository.ProtocolRepository,
	stepRepo repository.ProtocolStepRepository,
	execRepo repository.WorkflowExecutionRepository,
	orderRepo repository.OrderRepository,
	codec *barcode.Codec,
) *BatchUseCase {
	return &BatchUseCase{
		repo:         repo,
		protocolRepo: protocolRepo,
		stepRepo:     stepRepo,
		execRepo:     execRepo,
		orderRepo:    orderRepo,
		codec:        codec,
	}
}

var _ workflow.BoardReader = (*BatchUseCase)(nil)

// Create crea un lote Open. El número debe poder imprimirse en todos los códigos del protocolo.
func (uc *BatchUseCase) Create(ctx context.Context, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	number := strings.TrimSpace(in.BatchNumber)
	protocol, err := uc.protocolRepo.GetByID(ctx, in.ProtocolID)
	if err != nil {
		return nil, err
	}
	if protocol == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkNumber(number, protocol.Steps); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Batch{
		ID:          uuid.New().String(),
		BatchNumber: number,
		ProtocolID:  protocol.ID,
		Status:      entity.BatchStatusOpen,
		Notes:       in.Notes,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	if len(in.OrderIDs) > 0 {
		if _, err := uc.orderRepo.AssignBatch(ctx, b.ID, in.OrderIDs, now); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(b), nil
}

// GetByID obtiene un lote por ID.
func (uc *BatchUseCase) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	return uc.toResponse(b), nil
}

// Update cambia número o notas. El número solo cambia mientras el lote está Open.
func (uc *BatchUseCase) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	if in.BatchNumber != nil && strings.TrimSpace(*in.BatchNumber) != b.BatchNumber {
		if b.Status != entity.BatchStatusOpen {
			return nil, fmt.Errorf("%w: el lote ya inició", domain.ErrConflict)
		}
		steps, err := uc.stepRepo.ListByProtocol(ctx, b.ProtocolID)
		if err != nil {
			return nil, err
		}
		number := strings.TrimSpace(*in.BatchNumber)
		if err := uc.checkNumber(number, derefSteps(steps)); err != nil {
			return nil, err
		}
		b.BatchNumber = number
	}
	setString(&b.Notes, in.Notes)
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return uc.toResponse(b), nil
}

// List lista lotes (filtros protocol_id, status).
func (uc *BatchUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.BatchListResponse, error) {
	f := toFilter(q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *uc.toResponse(b))
	}
	return &dto.BatchListResponse{Items: items, Page: dto.NewPage(f.Limit, f.Offset, total)}, nil
}

// Delete elimina un lote (y sus ejecuciones); las órdenes vuelven a Received.
func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// AssignOrders agrega órdenes Received al lote.
func (uc *BatchUseCase) AssignOrders(ctx context.Context, id string, in dto.AssignOrdersRequest) (*dto.AssignOrdersResponse, error) {
	if len(in.OrderIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.Status == entity.BatchStatusCompleted {
		return nil, fmt.Errorf("%w: lote completado", domain.ErrConflict)
	}
	n, err := uc.orderRepo.AssignBatch(ctx, id, in.OrderIDs, time.Now())
	if err != nil {
		return nil, err
	}
	return &dto.AssignOrdersResponse{Assigned: n}, nil
}

// Board devuelve una fila por paso (orden step_number) con su ejecución, paginadas en memoria.
func (uc *BatchUseCase) Board(ctx context.Context, id string, page dto.PageRequest) (*dto.BoardResponse, error) {
	b, rows, err := uc.boardRows(ctx, id)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	return &dto.BoardResponse{
		Batch: *uc.toResponse(b),
		Rows:  pagination.Slice(rows, page.Limit, page.Offset),
		Page:  dto.NewPage(page.Limit, page.Offset, len(rows)),
	}, nil
}

// FullBoard tablero completo sin paginar (exportación).
func (uc *BatchUseCase) FullBoard(ctx context.Context, id string) (*dto.BoardResponse, error) {
	b, rows, err := uc.boardRows(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.BoardResponse{
		Batch: *uc.toResponse(b),
		Rows:  rows,
		Page:  dto.NewPage(len(rows), 0, len(rows)),
	}, nil
}

// Barcodes arma la hoja de códigos del lote: código del lote y START/STOP por paso.
func (uc *BatchUseCase) Barcodes(ctx context.Context, id string) (*dto.BarcodeSheet, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	steps, err := uc.stepRepo.ListByProtocol(ctx, b.ProtocolID)
	if err != nil {
		return nil, err
	}
	batchCode, err := uc.codec.EncodeBatch(b.BatchNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: lote %s: %v", domain.ErrConflict, b.BatchNumber, err)
	}
	sheet := &dto.BarcodeSheet{BatchNumber: b.BatchNumber, BatchBarcode: batchCode, Steps: []dto.StepBarcodeEntry{}}
	for _, st := range steps {
		start, stop, err := uc.stepCodes(st.Name, b.BatchNumber)
		if err != nil {
			return nil, fmt.Errorf("%w: paso %q: %v", domain.ErrConflict, st.Name, err)
		}
		sheet.Steps = append(sheet.Steps, dto.StepBarcodeEntry{
			StepNumber:   st.StepNumber,
			StepName:     st.Name,
			StartBarcode: start,
			StopBarcode:  stop,
		})
	}
	return sheet, nil
}

func (uc *BatchUseCase) boardRows(ctx context.Context, id string) (*entity.Batch, []dto.BoardRow, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, domain.ErrNotFound
	}
	steps, err := uc.stepRepo.ListByProtocol(ctx, b.ProtocolID)
	if err != nil {
		return nil, nil, err
	}
	execs, err := uc.execRepo.ListByBatch(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	byStep := make(map[string]*entity.WorkflowExecution, len(execs))
	for _, e := range execs {
		byStep[e.ProtocolStepID] = e
	}

	rows := make([]dto.BoardRow, 0, len(steps))
	for _, st := range steps {
		row := dto.BoardRow{
			StepID:          st.ID,
			StepNumber:      st.StepNumber,
			StepName:        st.Name,
			ExpectedMinutes: st.ExpectedMinutes,
			Status:          entity.ExecutionPending,
		}
		if e, ok := byStep[st.ID]; ok {
			row.Status = e.Status
			row.StartedAt, row.StartedBy = e.StartedAt, e.StartedBy
			row.CompletedAt, row.CompletedBy = e.CompletedAt, e.CompletedBy
			row.Notes = e.Notes
		}
		// Un código que no cabe no invalida el tablero; queda vacío.
		row.StartBarcode, row.StopBarcode, _ = uc.stepCodes(st.Name, b.BatchNumber)
		rows = append(rows, row)
	}
	return b, rows, nil
}

func (uc *BatchUseCase) stepCodes(stepName, batchNumber string) (string, string, error) {
	start, err := uc.codec.EncodeStart(stepName, batchNumber)
	if err != nil {
		return "", "", err
	}
	stop, err := uc.codec.EncodeStop(stepName, batchNumber)
	if err != nil {
		return "", "", err
	}
	return start, stop, nil
}

// checkNumber valida el número contra el formato de códigos y el largo máximo con los pasos dados.
func (uc *BatchUseCase) checkNumber(number string, steps []entity.ProtocolStep) error {
	if !barcode.ValidBatchNumber(number) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, barcode.ErrInvalidBatchNumber)
	}
	if _, err := uc.codec.EncodeBatch(number); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for _, st := range steps {
		if _, _, err := uc.stepCodes(st.Name, number); err != nil {
			return fmt.Errorf("%w: paso %q: %v", domain.ErrInvalidInput, st.Name, err)
		}
	}
	return nil
}

func (uc *BatchUseCase) toResponse(b *entity.Batch) *dto.BatchResponse {
	code, _ := uc.codec.EncodeBatch(b.BatchNumber)
	return &dto.BatchResponse{
		ID:          b.ID,
		BatchNumber: b.BatchNumber,
		ProtocolID:  b.ProtocolID,
		Status:      b.Status,
		Notes:       b.Notes,
		Barcode:     code,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func derefSteps(steps []*entity.ProtocolStep) []entity.ProtocolStep {
	out := make([]entity.ProtocolStep, 0, len(steps))
	for _, s := range steps {
		out = append(out, *s)
	}
	return out
}
