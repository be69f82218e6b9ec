package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
	"github.com/jhoicas/LabOps-api/internal/domain"
	"github.com/jhoicas/LabOps-api/internal/domain/entity"
	"github.com/jhoicas/LabOps-api/pkg/barcode"
)

func newProtocolUC() (*ProtocolUseCase, *fakeProtocolRepo, *fakeStepRepo, *fakeMethodRepo) {
	uc, protocols, steps, methods, _ := newProtocolUCWithBatches()
	return uc, protocols, steps, methods
}

func newProtocolUCWithBatches() (*ProtocolUseCase, *fakeProtocolRepo, *fakeStepRepo, *fakeMethodRepo, *fakeBatchRepo) {
	steps := &fakeStepRepo{items: map[string]*entity.ProtocolStep{}, inUse: map[string]bool{}}
	protocols := &fakeProtocolRepo{items: map[string]*entity.Protocol{}, steps: steps, links: map[string][]string{}}
	methods := &fakeMethodRepo{items: map[string]*entity.TestMethod{
		"m1": {ID: "m1", Code: "CBC"},
		"m2": {ID: "m2", Code: "BMP"},
	}}
	batches := &fakeBatchRepo{items: map[string]*entity.Batch{}}
	uc := NewProtocolUseCase(protocols, steps, methods, batches, barcode.New(barcode.MaxLength))
	return uc, protocols, steps, methods, batches
}

func TestProtocol_CreateConPruebas(t *testing.T) {
	uc, protocols, _, _ := newProtocolUC()

	out, err := uc.Create(context.Background(), dto.CreateProtocolRequest{
		Name:          " Extracción ADN ",
		TestMethodIDs: []string{"m1", "m2", "m1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Extracción ADN", out.Name)
	assert.Equal(t, "1", out.Version)
	assert.Equal(t, []string{"m1", "m2"}, protocols.links[out.ID])

	_, err = uc.Create(context.Background(), dto.CreateProtocolRequest{Name: "X", TestMethodIDs: []string{"zz"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProtocol_AddStepRechazaColisionDeToken(t *testing.T) {
	uc, _, _, _ := newProtocolUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProtocolRequest{Name: "PCR"})
	require.NoError(t, err)

	st, err := uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 1, Name: "Lavado final"})
	require.NoError(t, err)
	assert.Equal(t, "LAVADO_FINAL", st.StepToken)

	_, err = uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 2, Name: "lavado   FINAL"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 1, Name: "Secado"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 3, Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddStep(ctx, "nope", dto.CreateProtocolStepRequest{StepNumber: 1, Name: "A"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProtocol_UpdateStepPermiteMismoNombre(t *testing.T) {
	uc, _, _, _ := newProtocolUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProtocolRequest{Name: "PCR"})
	require.NoError(t, err)
	st, err := uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 1, Name: "Mezcla"})
	require.NoError(t, err)

	minutes := 30
	out, err := uc.UpdateStep(ctx, p.ID, st.ID, dto.UpdateProtocolStepRequest{ExpectedMinutes: &minutes})
	require.NoError(t, err)
	assert.Equal(t, 30, out.ExpectedMinutes)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Steps, 1)
	assert.Equal(t, "MEZCLA", got.Steps[0].StepToken)

	assert.ErrorIs(t, uc.DeleteStep(ctx, "otro", st.ID), domain.ErrNotFound)
	assert.NoError(t, uc.DeleteStep(ctx, p.ID, st.ID))
}

func TestProtocol_PasoLargoNoRompeCodigosDeLotesExistentes(t *testing.T) {
	uc, _, _, _, batches := newProtocolUCWithBatches()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProtocolRequest{Name: "PCR"})
	require.NoError(t, err)

	// 60 caracteres: sin lotes el token cabe en un código.
	long := strings.Repeat("Incubacion", 6)
	first, err := uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 1, Name: long})
	require.NoError(t, err)

	// START_<60>_LOTE-2024-000123 ocupa 83 caracteres.
	batches.items["b1"] = &entity.Batch{ID: "b1", ProtocolID: p.ID, BatchNumber: "LOTE-2024-000123"}
	batches.items["b2"] = &entity.Batch{ID: "b2", ProtocolID: "otro", BatchNumber: "LOTE-9999-999999-XXXXXXXXXX"}

	_, err = uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 2, Name: long + " bis"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	renamed := long + " B"
	_, err = uc.UpdateStep(ctx, p.ID, first.ID, dto.UpdateProtocolStepRequest{Name: &renamed})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	st, err := uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 2, Name: "Lectura"})
	require.NoError(t, err)
	assert.Equal(t, "LECTURA", st.StepToken)
}

func TestProtocol_DeleteStepConEjecucionesEsConflicto(t *testing.T) {
	uc, _, steps, _ := newProtocolUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProtocolRequest{Name: "PCR"})
	require.NoError(t, err)
	st, err := uc.AddStep(ctx, p.ID, dto.CreateProtocolStepRequest{StepNumber: 1, Name: "Mezcla"})
	require.NoError(t, err)

	steps.inUse[st.ID] = true
	assert.ErrorIs(t, uc.DeleteStep(ctx, p.ID, st.ID), domain.ErrConflict)
	assert.Contains(t, steps.items, st.ID)

	assert.ErrorIs(t, uc.DeleteStep(ctx, p.ID, "nope"), domain.ErrNotFound)
}
