// Package xlsx genera las exportaciones XLSX (tablero de lote y órdenes) con excelize.
package xlsx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
)

// ContentType tipo MIME de los libros generados.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter implementa reporting.WorkbookExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// BoardWorkbook una fila por paso con estado, sellos y códigos.
func (e *Exporter) BoardWorkbook(board *dto.BoardResponse) ([]byte, error) {
	headers := []string{"Paso", "Nombre", "Minutos esperados", "Estado", "Inicio", "Iniciado por", "Fin", "Finalizado por", "Notas", "Código inicio", "Código fin"}
	data := make([][]string, 0, len(board.Rows))
	for _, r := range board.Rows {
		data = append(data, []string{
			strconv.Itoa(r.StepNumber), r.StepName, strconv.Itoa(r.ExpectedMinutes), r.Status,
			formatTime(r.StartedAt), deref(r.StartedBy), formatTime(r.CompletedAt), deref(r.CompletedBy),
			r.Notes, r.StartBarcode, r.StopBarcode,
		})
	}
	return workbook(sheetTitle("Lote "+board.Batch.BatchNumber), headers, data)
}

// OrdersWorkbook una fila por orden.
func (e *Exporter) OrdersWorkbook(orders []dto.OrderResponse) ([]byte, error) {
	headers := []string{"ID", "Organización", "Sede", "Muestra", "Tipo muestra", "Prueba", "Lote", "Estado", "Prioridad", "Tomada", "Recibida", "Notas"}
	data := make([][]string, 0, len(orders))
	for _, o := range orders {
		data = append(data, []string{
			o.ID, o.OrganizationID, deref(o.LocationID), o.SampleID, o.SampleType, o.TestMethodID,
			deref(o.BatchID), o.Status, o.Priority, formatTime(o.CollectedAt), o.ReceivedAt.Format(time.RFC3339), o.Notes,
		})
	}
	return workbook("Ordenes", headers, data)
}

// workbook arma una hoja con encabezado resaltado y devuelve el archivo en memoria.
func workbook(sheetName string, headers []string, data [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de encabezado: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", last, 18); err != nil {
		return nil, err
	}

	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetTitle ajusta el nombre a las reglas de Excel: máximo 31 caracteres y sin []:*?/\.
func sheetTitle(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, s)
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
