package workflow

import (
	"context"
	"fmt"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
	"github.com/jhoicas/LabOps-api/pkg/barcode"
)

// ScanUseCase despacha un código escaneado: BATCH muestra el tablero, START/STOP ejecutan la transición.
type ScanUseCase struct {
	codec       *barcode.Codec
	batchRepo   repository.BatchRepository
	stepRepo    repository.ProtocolStepRepository
	transitions *TransitionUseCase
	board       BoardReader
	recorder    Recorder
}

// NewScanUseCase construye el caso de uso.
func NewScanUseCase(
	codec *barcode.Codec,
	batchRepo repository.BatchRepository,
	stepRepo repository.ProtocolStepRepository,
	transitions *TransitionUseCase,
	board BoardReader,
	recorder Recorder,
) *ScanUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &ScanUseCase{
		codec:       codec,
		batchRepo:   batchRepo,
		stepRepo:    stepRepo,
		transitions: transitions,
		board:       board,
		recorder:    recorder,
	}
}

// Scan decodifica code y ejecuta la acción correspondiente con userID como responsable.
func (uc *ScanUseCase) Scan(ctx context.Context, code, userID, notes string) (*dto.ScanResponse, error) {
	s := uc.codec.Decode(code)
	resp, err := uc.dispatch(ctx, s, userID, notes)
	uc.recorder.ObserveScan(string(s.Action), resultLabel(err))
	return resp, err
}

func (uc *ScanUseCase) dispatch(ctx context.Context, s barcode.Scan, userID, notes string) (*dto.ScanResponse, error) {
	if s.Action == barcode.ActionUnknown {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, s.Err)
	}
	batch, err := uc.batchRepo.GetByNumber(ctx, s.BatchNumber)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, s.BatchNumber)
	}
	resp := &dto.ScanResponse{Action: string(s.Action), StepToken: s.StepToken}

	if s.Action != barcode.ActionBatch {
		steps, err := uc.stepRepo.ListByProtocol(ctx, batch.ProtocolID)
		if err != nil {
			return nil, err
		}
		step, err := ResolveStep(steps, s.StepToken)
		if err != nil {
			return nil, err
		}
		var exec *entity.WorkflowExecution
		if s.Action == barcode.ActionStart {
			exec, err = uc.transitions.Start(ctx, batch.ID, step.ID, userID)
		} else {
			exec, err = uc.transitions.Stop(ctx, batch.ID, step.ID, userID, notes)
		}
		if err != nil {
			return nil, err
		}
		resp.Execution = ToExecutionResponse(exec)
	}

	board, err := uc.board.Board(ctx, batch.ID, dto.PageRequest{Limit: 100})
	if err != nil {
		return nil, err
	}
	resp.Board = board
	return resp, nil
}

// ResolveStep busca el paso cuyo nombre normalizado coincide con token.
// Dos pasos que normalizan igual devuelven ErrAmbiguousStep.
func ResolveStep(steps []*entity.ProtocolStep, token string) (*entity.ProtocolStep, error) {
	var found *entity.ProtocolStep
	for _, st := range steps {
		if barcode.StepToken(st.Name) != token {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrAmbiguousStep, token)
		}
		found = st
	}
	if found == nil {
		return nil, fmt.Errorf("%w: paso %s", domain.ErrNotFound, token)
	}
	return found, nil
}

// ToExecutionResponse convierte la entidad a DTO.
func ToExecutionResponse(e *entity.WorkflowExecution) *dto.ExecutionResponse {
	if e == nil {
		return nil
	}
	return &dto.ExecutionResponse{
		ID:             e.ID,
		BatchID:        e.BatchID,
		ProtocolStepID: e.ProtocolStepID,
		Status:         e.Status,
		StartedAt:      e.StartedAt,
		StartedBy:      e.StartedBy,
		CompletedAt:    e.CompletedAt,
		CompletedBy:    e.CompletedBy,
		Notes:          e.Notes,
		UpdatedAt:      e.UpdatedAt,
	}
}
