package barcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabOps-api/pkg/barcode"
)

func TestStepToken(t *testing.T) {
	cases := map[string]string{
		"DNA Extraction":      "DNA_EXTRACTION",
		"  pcr   setup  ":     "PCR_SETUP",
		"Extracción de ADN":   "EXTRACCION_DE_ADN",
		"Step 2":              "STEP_2",
		"already_TOKENIZED":   "ALREADY_TOKENIZED",
		"tab\tand\nnewline":   "TAB_AND_NEWLINE",
		"":                    "",
		"   ":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, barcode.StepToken(in), "StepToken(%q)", in)
	}
}

func TestEncodeBatch_RoundTrip(t *testing.T) {
	for _, n := range []string{"B1", "2024-0001", "LOT.77", "12345"} {
		code, err := barcode.EncodeBatch(n)
		require.NoError(t, err)
		assert.Equal(t, "BATCH_"+n, code)

		s := barcode.Decode(code)
		require.NoError(t, s.Err)
		assert.Equal(t, barcode.ActionBatch, s.Action)
		assert.Equal(t, n, s.BatchNumber)
	}
}

func TestEncodeStartStop_RoundTrip(t *testing.T) {
	steps := []string{"Extraction", "DNA Extraction", "Step 2", "PCR 96 Well", "qPCR_Run"}
	for _, step := range steps {
		start, err := barcode.EncodeStart(step, "2024-17")
		require.NoError(t, err)
		stop, err := barcode.EncodeStop(step, "2024-17")
		require.NoError(t, err)

		s := barcode.Decode(start)
		require.NoError(t, s.Err)
		assert.Equal(t, barcode.ActionStart, s.Action)
		assert.Equal(t, barcode.StepToken(step), s.StepToken)
		assert.Equal(t, "2024-17", s.BatchNumber)

		s = barcode.Decode(stop)
		require.NoError(t, s.Err)
		assert.Equal(t, barcode.ActionStop, s.Action)
		assert.Equal(t, barcode.StepToken(step), s.StepToken)
		assert.Equal(t, "2024-17", s.BatchNumber)
	}
}

func TestEncode_Formato(t *testing.T) {
	code, err := barcode.EncodeStart("dna extraction", "B42")
	require.NoError(t, err)
	assert.Equal(t, "START_DNA_EXTRACTION_B42", code)

	code, err = barcode.EncodeStop("dna extraction", "B42")
	require.NoError(t, err)
	assert.Equal(t, "STOP_DNA_EXTRACTION_B42", code)
}

func TestEncode_NumeroDeLoteAmbiguo(t *testing.T) {
	for _, n := range []string{"", "B_1", "B 1", "lote\t9", "Año1"} {
		_, err := barcode.EncodeBatch(n)
		assert.ErrorIs(t, err, barcode.ErrInvalidBatchNumber, "lote %q", n)

		_, err = barcode.EncodeStart("Extraction", n)
		assert.ErrorIs(t, err, barcode.ErrInvalidBatchNumber, "lote %q", n)
	}
}

func TestEncode_PasoVacio(t *testing.T) {
	_, err := barcode.EncodeStop("   ", "B1")
	assert.ErrorIs(t, err, barcode.ErrEmptyStep)
}

func TestEncode_LongitudMaxima(t *testing.T) {
	_, err := barcode.EncodeStart(strings.Repeat("x", 80), "B1")
	assert.ErrorIs(t, err, barcode.ErrTooLong)

	// 80 caracteres exactos es válido
	code, err := barcode.EncodeBatch(strings.Repeat("9", 74))
	require.NoError(t, err)
	assert.Len(t, code, 80)
}

func TestCodec_LimitePersonalizado(t *testing.T) {
	c := barcode.New(10)
	assert.Equal(t, 10, c.MaxLength())

	code, err := c.EncodeBatch("1234")
	require.NoError(t, err)
	assert.Equal(t, "BATCH_1234", code)

	_, err = c.EncodeBatch("12345")
	assert.ErrorIs(t, err, barcode.ErrTooLong)

	assert.Equal(t, barcode.MaxLength, barcode.New(0).MaxLength())
}

func TestEncode_NoASCII(t *testing.T) {
	_, err := barcode.EncodeStart("Paso µ", "B1")
	assert.ErrorIs(t, err, barcode.ErrNonASCII)
}

func TestDecode_Desconocidos(t *testing.T) {
	cases := map[string]error{
		"":                      barcode.ErrUnknownPrefix,
		"HELLO_WORLD":           barcode.ErrUnknownPrefix,
		"batch_B1":              barcode.ErrUnknownPrefix,
		"BATCH_":                barcode.ErrMalformed,
		"BATCH_B_1":             barcode.ErrMalformed,
		"START_B1":              barcode.ErrMalformed,
		"STOP__B1":              barcode.ErrMalformed,
		"START_EXTRACTION_":     barcode.ErrMalformed,
		"START_EXTRACCIÓN_B1":   barcode.ErrNonASCII,
		strings.Repeat("A", 81): barcode.ErrTooLong,
	}
	for code, want := range cases {
		s := barcode.Decode(code)
		assert.Equal(t, barcode.ActionUnknown, s.Action, "código %q", code)
		assert.ErrorIs(t, s.Err, want, "código %q", code)
	}
}

func TestDecode_RecortaFinDeLinea(t *testing.T) {
	s := barcode.Decode("START_PCR_SETUP_B7\r\n")
	require.NoError(t, s.Err)
	assert.Equal(t, barcode.ActionStart, s.Action)
	assert.Equal(t, "PCR_SETUP", s.StepToken)
	assert.Equal(t, "B7", s.BatchNumber)
	assert.Equal(t, "START_PCR_SETUP_B7", s.Raw)
}

// El número de lote siempre es el último token: pasos que terminan en dígitos
// no se confunden con el lote.
func TestDecode_PasoConDigitos(t *testing.T) {
	code, err := barcode.EncodeStart("Wash 2", "100")
	require.NoError(t, err)
	assert.Equal(t, "START_WASH_2_100", code)

	s := barcode.Decode(code)
	assert.Equal(t, "WASH_2", s.StepToken)
	assert.Equal(t, "100", s.BatchNumber)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, barcode.Validate("BATCH_1"))
	assert.NoError(t, barcode.Validate(strings.Repeat("A", 80)))
	assert.ErrorIs(t, barcode.Validate(strings.Repeat("A", 81)), barcode.ErrTooLong)
	assert.ErrorIs(t, barcode.Validate("BATCH_ñ"), barcode.ErrNonASCII)
}
