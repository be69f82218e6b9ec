package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
)

func TestRenderBarcodeSheet(t *testing.T) {
	g := NewMarotoBarcodeSheet("labops-api")
	out, err := g.RenderBarcodeSheet(&dto.BarcodeSheet{
		BatchNumber:  "1042",
		BatchBarcode: "BATCH_1042",
		Steps: []dto.StepBarcodeEntry{
			{StepNumber: 1, StepName: "Extracción", StartBarcode: "START_EXTRACCION_1042", StopBarcode: "STOP_EXTRACCION_1042"},
			{StepNumber: 2, StepName: "PCR Setup", StartBarcode: "START_PCR_SETUP_1042", StopBarcode: "STOP_PCR_SETUP_1042"},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderBarcodeSheet_Nil(t *testing.T) {
	_, err := NewMarotoBarcodeSheet("x").RenderBarcodeSheet(nil)
	assert.Error(t, err)
}
