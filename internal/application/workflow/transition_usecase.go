package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/internal/domain/repository"
	domainwf "github.com/jhoicas/LabOps-api/internal/domain/workflow"
)

// Acciones registradas en logs y métricas.
const (
	ActionStart = "start"
	ActionStop  = "stop"
)

// TransitionUseCase inicia y detiene pasos de protocolo sobre lotes de forma transaccional:
// bloquea el lote y la ejecución (SELECT FOR UPDATE), aplica la máquina de estados y deriva el estado del lote.
type TransitionUseCase struct {
	txRunner TxRunner
	stepRepo repository.ProtocolStepRepository
	recorder Recorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewTransitionUseCase construye el caso de uso. recorder nil usa NopRecorder.
func NewTransitionUseCase(txRunner TxRunner, stepRepo repository.ProtocolStepRepository, recorder Recorder, log zerolog.Logger) *TransitionUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &TransitionUseCase{
		txRunner: txRunner,
		stepRepo: stepRepo,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// Start marca el paso como In Progress para el lote. Si ya estaba en curso re-sella la misma fila.
func (uc *TransitionUseCase) Start(ctx context.Context, batchID, stepID, userID string) (*entity.WorkflowExecution, error) {
	return uc.run(ctx, ActionStart, batchID, stepID, userID, func(execRepo repository.WorkflowExecutionRepository, now time.Time) (*entity.WorkflowExecution, error) {
		exec, err := execRepo.EnsureForUpdate(ctx, batchID, stepID, now)
		if err != nil {
			return nil, err
		}
		if err := domainwf.Start(exec, userID, now); err != nil {
			return nil, err
		}
		return exec, nil
	})
}

// Stop marca el paso como Completed. Falla con ErrExecutionNotFound si nunca se inició.
func (uc *TransitionUseCase) Stop(ctx context.Context, batchID, stepID, userID, notes string) (*entity.WorkflowExecution, error) {
	return uc.run(ctx, ActionStop, batchID, stepID, userID, func(execRepo repository.WorkflowExecutionRepository, now time.Time) (*entity.WorkflowExecution, error) {
		exec, err := execRepo.GetForUpdate(ctx, batchID, stepID)
		if err != nil {
			return nil, err
		}
		if err := domainwf.Complete(exec, userID, now, notes); err != nil {
			return nil, err
		}
		return exec, nil
	})
}

type applyFn func(execRepo repository.WorkflowExecutionRepository, now time.Time) (*entity.WorkflowExecution, error)

func (uc *TransitionUseCase) run(ctx context.Context, action, batchID, stepID, userID string, apply applyFn) (*entity.WorkflowExecution, error) {
	started := time.Now()
	exec, err := uc.transition(ctx, batchID, stepID, userID, apply)
	result := resultLabel(err)
	uc.recorder.ObserveTransition(action, result, time.Since(started))

	ev := uc.log.Info()
	if err != nil {
		ev = uc.log.Warn().Err(err)
	}
	ev.Str("action", action).
		Str("batch_id", batchID).
		Str("step_id", stepID).
		Str("user_id", userID).
		Str("result", result).
		Msg("transición de paso")
	return exec, err
}

func (uc *TransitionUseCase) transition(ctx context.Context, batchID, stepID, userID string, apply applyFn) (*entity.WorkflowExecution, error) {
	if batchID == "" || stepID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	step, err := uc.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if step == nil {
		return nil, domain.ErrNotFound
	}
	steps, err := uc.stepRepo.ListByProtocol(ctx, step.ProtocolID)
	if err != nil {
		return nil, err
	}

	var out *entity.WorkflowExecution
	err = uc.txRunner.RunWorkflow(ctx, func(execRepo repository.WorkflowExecutionRepository, batchRepo repository.BatchRepository) error {
		// El lock del lote serializa transiciones concurrentes de pasos distintos del mismo lote.
		batch, err := batchRepo.GetForUpdate(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.ProtocolID != step.ProtocolID {
			return domain.ErrInvalidInput
		}

		now := uc.now()
		exec, err := apply(execRepo, now)
		if err != nil {
			return err
		}
		if err := domainwf.CheckInvariants(exec); err != nil {
			return err
		}
		if err := execRepo.Update(ctx, exec); err != nil {
			return err
		}

		execs, err := execRepo.ListByBatch(ctx, batchID)
		if err != nil {
			return err
		}
		if status := domainwf.BatchStatus(execs, len(steps)); status != batch.Status {
			if err := batchRepo.UpdateStatus(ctx, batchID, status, now); err != nil {
				return err
			}
		}
		out = exec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrExecutionNotFound):
		return "not_started"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
