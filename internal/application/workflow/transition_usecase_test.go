package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
)

func newTransitions(s *memStore, rec Recorder) *TransitionUseCase {
	uc := NewTransitionUseCase(memTx{s}, memStepRepo{s}, rec, zerolog.Nop())
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	uc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Minute)
		return clock
	}
	return uc
}

func TestStart_PrimeraVezCreaUnaFilaInProgress(t *testing.T) {
	s := fixture()
	uc := newTransitions(s, nil)

	exec, err := uc.Start(context.Background(), "b1", "s1", "tec-1")
	require.NoError(t, err)

	assert.Equal(t, entity.ExecutionInProgress, exec.Status)
	assert.Equal(t, "tec-1", *exec.StartedBy)
	assert.Len(t, s.execs, 1)
	assert.Equal(t, entity.BatchStatusInProgress, s.batches["b1"].Status)
}

func TestStart_SegundaVezSobrescribeLaMismaFila(t *testing.T) {
	s := fixture()
	uc := newTransitions(s, nil)
	ctx := context.Background()

	first, err := uc.Start(ctx, "b1", "s1", "tec-1")
	require.NoError(t, err)
	second, err := uc.Start(ctx, "b1", "s1", "tec-2")
	require.NoError(t, err)

	assert.Len(t, s.execs, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.StartedAt.After(*first.StartedAt))
	assert.Equal(t, "tec-2", *s.execs[execKey("b1", "s1")].StartedBy)
}

func TestStart_ConcurrenteNoDuplica(t *testing.T) {
	s := fixture()
	uc := newTransitions(s, nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Start(context.Background(), "b1", "s1", "tec-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, s.execs, 1)
	assert.Equal(t, entity.ExecutionInProgress, s.execs[execKey("b1", "s1")].Status)
}

func TestStop_SinInicioFallaExplicito(t *testing.T) {
	s := fixture()
	rec := newCountingRecorder()
	uc := newTransitions(s, rec)

	_, err := uc.Stop(context.Background(), "b1", "s1", "tec-1", "")
	assert.ErrorIs(t, err, domain.ErrExecutionNotFound)
	assert.Empty(t, s.execs)
	assert.Equal(t, entity.BatchStatusOpen, s.batches["b1"].Status)
	assert.Equal(t, 1, rec.transitions["stop:not_started"])
}

func TestStop_CompletaYCierraElLote(t *testing.T) {
	s := fixture()
	uc := newTransitions(s, nil)
	ctx := context.Background()

	for _, step := range []string{"s1", "s2"} {
		_, err := uc.Start(ctx, "b1", step, "tec-1")
		require.NoError(t, err)
	}
	exec, err := uc.Stop(ctx, "b1", "s1", "sup-1", " ok ")
	require.NoError(t, err)
	assert.Equal(t, entity.ExecutionCompleted, exec.Status)
	assert.Equal(t, "ok", exec.Notes)
	assert.Equal(t, entity.BatchStatusInProgress, s.batches["b1"].Status)

	_, err = uc.Stop(ctx, "b1", "s2", "sup-1", "")
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusCompleted, s.batches["b1"].Status)
}

func TestStart_CompletadoNoSeReabreYHaceRollback(t *testing.T) {
	s := fixture()
	uc := newTransitions(s, nil)
	ctx := context.Background()

	_, err := uc.Start(ctx, "b1", "s1", "tec-1")
	require.NoError(t, err)
	_, err = uc.Stop(ctx, "b1", "s1", "tec-1", "")
	require.NoError(t, err)
	before := s.execs[execKey("b1", "s1")]

	_, err = uc.Start(ctx, "b1", "s1", "tec-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, before, s.execs[execKey("b1", "s1")])
}

func TestTransition_PasoDeOtroProtocolo(t *testing.T) {
	s := fixture()
	uc := newTransitions(s, nil)

	_, err := uc.Start(context.Background(), "b2", "s1", "tec-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.execs)
}

func TestTransition_NoEncontrado(t *testing.T) {
	s := fixture()
	uc := newTransitions(s, nil)
	ctx := context.Background()

	_, err := uc.Start(ctx, "b1", "nope", "tec-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Start(ctx, "nope", "s1", "tec-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Start(ctx, "b1", "s1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
