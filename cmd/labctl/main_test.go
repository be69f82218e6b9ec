package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabOps-api/pkg/barcode"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestBarcodeEncode(t *testing.T) {
	out, err := run(t, "barcode", "encode", "start", "Extracción ADN", "L2024-001")
	require.NoError(t, err)
	assert.Equal(t, "START_EXTRACCION_ADN_L2024-001", out)

	out, err = run(t, "barcode", "encode", "batch", "L2024-001")
	require.NoError(t, err)
	assert.Equal(t, "BATCH_L2024-001", out)

	_, err = run(t, "barcode", "encode", "batch", "lote con espacios")
	assert.Error(t, err)

	_, err = run(t, "barcode", "encode", "pause", "X", "L1")
	assert.Error(t, err)
}

func TestBarcodeDecode(t *testing.T) {
	out, err := run(t, "barcode", "decode", "STOP_EXTRACCION_ADN_L2024-001")
	require.NoError(t, err)

	var s barcode.Scan
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, barcode.ActionStop, s.Action)
	assert.Equal(t, "EXTRACCION_ADN", s.StepToken)
	assert.Equal(t, "L2024-001", s.BatchNumber)

	_, err = run(t, "barcode", "decode", "PAUSE_X_L1")
	assert.Error(t, err)
}

func TestBarcode_LongitudMaxima(t *testing.T) {
	_, err := run(t, "barcode", "--max-length", "10", "encode", "batch", "L2024-000001")
	assert.Error(t, err)
	barcodeMaxLength = barcode.MaxLength
}
