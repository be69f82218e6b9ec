// Package pdf genera la hoja de códigos de barras de un lote con Maroto v2 (Code128).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lote N° + fecha de impresión                        │
//	│  CÓDIGO DEL LOTE: BATCH_<n>                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Paso 1 │ INICIO START_<PASO>_<n> │ FIN STOP_<PASO>_<n>      │
//	│  Paso 2 │ ...                                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoBarcodeSheet implementa reporting.BarcodeSheetRenderer usando Maroto v2.
type MarotoBarcodeSheet struct {
	author string
	now    func() time.Time
}

// NewMarotoBarcodeSheet construye el generador. author va en los metadatos del PDF.
func NewMarotoBarcodeSheet(author string) *MarotoBarcodeSheet {
	return &MarotoBarcodeSheet{author: author, now: time.Now}
}

// RenderBarcodeSheet genera el PDF y devuelve sus bytes.
func (g *MarotoBarcodeSheet) RenderBarcodeSheet(sheet *dto.BarcodeSheet) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("pdf: hoja vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Códigos de barras lote "+sheet.BatchNumber, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet.BatchNumber, g.now()))
	m.AddRows(batchCodeRow(sheet.BatchBarcode))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(stepHeaderRow())
	for _, st := range sheet.Steps {
		m.AddRows(stepRows(st)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(batchNumber string, printedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Lote "+batchNumber, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Impreso: "+printedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func batchCodeRow(batchCode string) core.Row {
	return row.New(28).Add(
		col.New(2),
		col.New(8).Add(
			code.NewBar(batchCode, props.Barcode{Percent: 90, Center: true}),
		),
		col.New(2),
	)
}

func stepHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Paso", 2),
		h("Inicio", 5),
		h("Fin", 5),
	)
}

// stepRows: barras de inicio/fin y debajo el texto legible de cada código.
func stepRows(st dto.StepBarcodeEntry) []core.Row {
	caption := func(s string) core.Component {
		return text.New(s, props.Text{Size: 6.5, Align: align.Center, Color: colorGray, Top: 0.5})
	}
	return []core.Row{
		row.New(22).Add(
			col.New(2).Add(
				text.New(strconv.Itoa(st.StepNumber), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 4}),
				text.New(st.StepName, props.Text{Size: 8, Align: align.Center, Top: 12}),
			),
			col.New(5).Add(code.NewBar(st.StartBarcode, props.Barcode{Percent: 85, Center: true})),
			col.New(5).Add(code.NewBar(st.StopBarcode, props.Barcode{Percent: 85, Center: true})),
		),
		row.New(5).Add(
			col.New(2),
			col.New(5).Add(caption(st.StartBarcode)),
			col.New(5).Add(caption(st.StopBarcode)),
		),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}),
	}
}
