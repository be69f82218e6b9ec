package workflow

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/pkg/barcode"
)

func newScan(s *memStore) (*ScanUseCase, *fakeBoard, *countingRecorder) {
	rec := newCountingRecorder()
	board := &fakeBoard{}
	tr := NewTransitionUseCase(memTx{s}, memStepRepo{s}, rec, zerolog.Nop())
	return NewScanUseCase(barcode.New(barcode.MaxLength), memBatchRepo{s}, memStepRepo{s}, tr, board, rec), board, rec
}

func TestScan_StartYStopPorCodigo(t *testing.T) {
	s := fixture()
	uc, board, rec := newScan(s)
	ctx := context.Background()

	start, err := barcode.EncodeStart("pcr setup", "1042")
	require.NoError(t, err)
	resp, err := uc.Scan(ctx, start, "tec-1", "")
	require.NoError(t, err)
	assert.Equal(t, "START", resp.Action)
	assert.Equal(t, "PCR_SETUP", resp.StepToken)
	require.NotNil(t, resp.Execution)
	assert.Equal(t, "s2", resp.Execution.ProtocolStepID)
	assert.Equal(t, entity.ExecutionInProgress, resp.Execution.Status)

	stop, err := barcode.EncodeStop("PCR Setup", "1042")
	require.NoError(t, err)
	resp, err = uc.Scan(ctx, stop+"\r\n", "tec-1", "sin novedad")
	require.NoError(t, err)
	assert.Equal(t, entity.ExecutionCompleted, resp.Execution.Status)
	assert.Equal(t, 2, board.calls)
	assert.Equal(t, 1, rec.scans["STOP:ok"])
}

func TestScan_AcentosSeNormalizan(t *testing.T) {
	s := fixture()
	uc, _, _ := newScan(s)

	resp, err := uc.Scan(context.Background(), "START_EXTRACCION_1042", "tec-1", "")
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.Execution.ProtocolStepID)
}

func TestScan_BatchDevuelveTablero(t *testing.T) {
	s := fixture()
	uc, board, _ := newScan(s)

	resp, err := uc.Scan(context.Background(), "BATCH_1042", "tec-1", "")
	require.NoError(t, err)
	assert.Equal(t, "BATCH", resp.Action)
	assert.Nil(t, resp.Execution)
	assert.Equal(t, "b1", resp.Board.Batch.ID)
	assert.Equal(t, 1, board.calls)
	assert.Empty(t, s.execs)
}

func TestScan_Errores(t *testing.T) {
	s := fixture()
	uc, _, rec := newScan(s)
	ctx := context.Background()

	_, err := uc.Scan(ctx, "FOO_1042", "tec-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, rec.scans["UNKNOWN:invalid_input"])

	_, err = uc.Scan(ctx, "BATCH_9999", "tec-1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Scan(ctx, "START_CENTRIFUGADO_1042", "tec-1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Scan(ctx, "STOP_EXTRACCION_1042", "tec-1", "")
	assert.ErrorIs(t, err, domain.ErrExecutionNotFound)
}

func TestResolveStep_Ambiguo(t *testing.T) {
	steps := []*entity.ProtocolStep{
		{ID: "a", Name: "Lavado  final"},
		{ID: "b", Name: "lavado final"},
	}
	_, err := ResolveStep(steps, "LAVADO_FINAL")
	assert.ErrorIs(t, err, domain.ErrAmbiguousStep)

	st, err := ResolveStep(steps[:1], "LAVADO_FINAL")
	require.NoError(t, err)
	assert.Equal(t, "a", st.ID)
}
