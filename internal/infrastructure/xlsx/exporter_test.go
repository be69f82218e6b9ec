package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
)

func TestBoardWorkbook(t *testing.T) {
	started := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	by := "tec-1"
	out, err := NewExporter().BoardWorkbook(&dto.BoardResponse{
		Batch: dto.BatchResponse{BatchNumber: "1042"},
		Rows: []dto.BoardRow{
			{StepNumber: 1, StepName: "Extracción", Status: "In Progress", StartedAt: &started, StartedBy: &by, StartBarcode: "START_EXTRACCION_1042"},
			{StepNumber: 2, StepName: "PCR", Status: "Pending"},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Lote 1042"}, f.GetSheetList())
	rows, err := f.GetRows("Lote 1042")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Paso", rows[0][0])
	assert.Equal(t, "Extracción", rows[1][1])
	assert.Equal(t, "2024-05-01T08:00:00Z", rows[1][4])
	assert.Equal(t, "tec-1", rows[1][5])
	assert.Equal(t, "START_EXTRACCION_1042", rows[1][9])
	assert.Equal(t, "Pending", rows[2][3])
}

func TestOrdersWorkbook_Vacio(t *testing.T) {
	out, err := NewExporter().OrdersWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Ordenes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 12)
}

func TestSheetTitle(t *testing.T) {
	assert.Equal(t, "Lote A-B", sheetTitle("Lote A/B"))
	assert.Len(t, sheetTitle("Lote 12345678901234567890123456789"), 31)
}
