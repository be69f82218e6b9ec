// Package barcode codifica y decodifica los códigos que se imprimen en las hojas de lote
// y que leen los escáneres del laboratorio.
//
// Formatos:
//
//	BATCH_<numeroLote>
//	START_<PASO>_<numeroLote>
//	STOP_<PASO>_<numeroLote>
//
// <PASO> es el token del nombre del paso (ver StepToken). El número de lote nunca puede
// contener "_" ni espacios: es el último token del código y se separa por "_".
package barcode

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength longitud máxima por defecto de un código (límite práctico de los lectores 1D).
const MaxLength = 80

const sep = "_"

// Action acción que representa un código escaneado.
type Action string

const (
	ActionBatch   Action = "BATCH"
	ActionStart   Action = "START"
	ActionStop    Action = "STOP"
	ActionUnknown Action = "UNKNOWN"
)

var (
	ErrNonASCII           = errors.New("barcode: contiene caracteres fuera de ASCII (0-127)")
	ErrTooLong            = errors.New("barcode: supera la longitud máxima")
	ErrInvalidBatchNumber = errors.New("barcode: número de lote inválido (vacío, con '_' o con espacios)")
	ErrEmptyStep          = errors.New("barcode: nombre de paso vacío")
	ErrMalformed          = errors.New("barcode: código mal formado")
	ErrUnknownPrefix      = errors.New("barcode: prefijo desconocido")
)

// Scan resultado de decodificar un código. Err explica por qué Action es UNKNOWN.
type Scan struct {
	Raw         string `json:"raw"`
	Action      Action `json:"action"`
	BatchNumber string `json:"batch_number,omitempty"`
	StepToken   string `json:"step_token,omitempty"`
	Err         error  `json:"-"`
}

// Codec aplica el formato con un límite de longitud configurable.
type Codec struct {
	maxLength int
}

// New construye un Codec. maxLength <= 0 usa MaxLength.
func New(maxLength int) *Codec {
	if maxLength <= 0 {
		maxLength = MaxLength
	}
	return &Codec{maxLength: maxLength}
}

// MaxLength devuelve el límite configurado.
func (c *Codec) MaxLength() int { return c.maxLength }

var std = New(MaxLength)

// StepToken normaliza un nombre de paso: quita acentos, reemplaza cada bloque de
// espacios por "_" y pasa a mayúsculas. "Extracción de ADN" -> "EXTRACCION_DE_ADN".
func StepToken(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	return strings.ToUpper(strings.Join(strings.Fields(folded), sep))
}

// ValidBatchNumber informa si un número de lote puede codificarse sin ambigüedad.
func ValidBatchNumber(n string) bool {
	if n == "" {
		return false
	}
	for i := 0; i < len(n); i++ {
		b := n[i]
		if b == '_' || b > unicode.MaxASCII || b <= ' ' || b == 0x7f {
			return false
		}
	}
	return true
}

// Validate comprueba rango ASCII (0-127) y longitud máxima.
func (c *Codec) Validate(code string) error {
	for i := 0; i < len(code); i++ {
		if code[i] > unicode.MaxASCII {
			return ErrNonASCII
		}
	}
	if len(code) > c.maxLength {
		return fmt.Errorf("%w: %d > %d", ErrTooLong, len(code), c.maxLength)
	}
	return nil
}

// EncodeBatch devuelve BATCH_<numeroLote>.
func (c *Codec) EncodeBatch(batchNumber string) (string, error) {
	if !ValidBatchNumber(batchNumber) {
		return "", ErrInvalidBatchNumber
	}
	code := string(ActionBatch) + sep + batchNumber
	if err := c.Validate(code); err != nil {
		return "", err
	}
	return code, nil
}

// EncodeStart devuelve START_<PASO>_<numeroLote>.
func (c *Codec) EncodeStart(stepName, batchNumber string) (string, error) {
	return c.encodeStep(ActionStart, stepName, batchNumber)
}

// EncodeStop devuelve STOP_<PASO>_<numeroLote>.
func (c *Codec) EncodeStop(stepName, batchNumber string) (string, error) {
	return c.encodeStep(ActionStop, stepName, batchNumber)
}

func (c *Codec) encodeStep(action Action, stepName, batchNumber string) (string, error) {
	if !ValidBatchNumber(batchNumber) {
		return "", ErrInvalidBatchNumber
	}
	token := StepToken(stepName)
	if token == "" {
		return "", ErrEmptyStep
	}
	code := string(action) + sep + token + sep + batchNumber
	if err := c.Validate(code); err != nil {
		return "", err
	}
	return code, nil
}

// Decode interpreta un código escaneado. Nunca falla: los códigos no reconocidos
// devuelven ActionUnknown con Err indicando el motivo.
func (c *Codec) Decode(code string) Scan {
	// los lectores suelen añadir CR/LF al final
	code = strings.TrimSpace(code)
	s := Scan{Raw: code, Action: ActionUnknown}
	if err := c.Validate(code); err != nil {
		s.Err = err
		return s
	}

	switch {
	case strings.HasPrefix(code, string(ActionBatch)+sep):
		n := strings.TrimPrefix(code, string(ActionBatch)+sep)
		if !ValidBatchNumber(n) {
			s.Err = ErrMalformed
			return s
		}
		s.Action = ActionBatch
		s.BatchNumber = n
	case strings.HasPrefix(code, string(ActionStart)+sep), strings.HasPrefix(code, string(ActionStop)+sep):
		parts := strings.Split(code, sep)
		if len(parts) < 3 {
			s.Err = ErrMalformed
			return s
		}
		batch := parts[len(parts)-1]
		step := strings.Join(parts[1:len(parts)-1], sep)
		if !ValidBatchNumber(batch) || step == "" {
			s.Err = ErrMalformed
			return s
		}
		s.Action = Action(parts[0])
		s.BatchNumber = batch
		s.StepToken = step
	default:
		s.Err = ErrUnknownPrefix
	}
	return s
}

// Funciones de paquete con el límite por defecto.

func EncodeBatch(batchNumber string) (string, error) { return std.EncodeBatch(batchNumber) }

func EncodeStart(stepName, batchNumber string) (string, error) {
	return std.EncodeStart(stepName, batchNumber)
}

func EncodeStop(stepName, batchNumber string) (string, error) {
	return std.EncodeStop(stepName, batchNumber)
}

func Decode(code string) Scan { return std.Decode(code) }

func Validate(code string) error { return std.Validate(code) }
