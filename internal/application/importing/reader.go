package importing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// toUTF8 quita el BOM y, si el contenido no es UTF-8 válido, lo decodifica como Windows-1252
// (exportaciones de Excel en español).
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	return charmap.Windows1252.NewDecoder().Bytes(data)
}

// row fila de datos con su número de línea en el archivo.
type row struct {
	line   int
	fields []string
}

// readRows lee el archivo delimitado saltando la fila de encabezado.
// Errores de formato de una fila se reportan como advertencia y la lectura continúa.
func readRows(data []byte, comma rune, warn func(line int, msg string)) ([]row, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("decodificar archivo: %w", err)
	}
	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false

	var rows []row
	header := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				warn(pe.StartLine, pe.Err.Error())
				continue
			}
			return nil, err
		}
		line, _ := r.FieldPos(0)
		if header {
			header = false
			continue
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		rows = append(rows, row{line: line, fields: rec})
	}
	return rows, nil
}

// warnings acumula advertencias de filas omitidas.
type warnings struct {
	list    []dto.ImportWarning
	skipped map[int]bool
}

func newWarnings() *warnings {
	return &warnings{list: []dto.ImportWarning{}, skipped: map[int]bool{}}
}

func (w *warnings) add(line int, format string, args ...any) {
	w.list = append(w.list, dto.ImportWarning{Line: line, Message: fmt.Sprintf(format, args...)})
	w.skipped[line] = true
}
