package export

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const gridSize = 12

// PDFExporter dibuja la tabla del reporte en A4 horizontal. Las columnas de IDs se omiten.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter construye el exportador.
func NewPDFExporter() *PDFExporter { return &PDFExporter{now: time.Now} }

func (e *PDFExporter) Format() string { return FormatPDF }

func (e *PDFExporter) Export(t dto.ReportTable) (*usecase.ExportedReport, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(t.Title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(t.Title, e.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cols := visibleColumns(t.Headers)
	size := gridSize / max(len(cols), 1)
	if size == 0 {
		size = 1
	}
	m.AddRows(headerRow(t.Headers, cols, size))
	for _, r := range t.Rows {
		m.AddRows(dataRow(r, cols, size))
	}
	if len(t.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridSize).Add(
			text.New("Sin datos para los filtros indicados.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return &usecase.ExportedReport{
		Body:        doc.GetBytes(),
		ContentType: "application/pdf",
		Extension:   FormatPDF,
	}, nil
}

func titleRow(title string, at time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 4, Color: colorGray,
		})),
	)
}

func headerRow(headers []string, cols []int, size int) core.Row {
	r := row.New(8)
	for _, i := range cols {
		r.Add(col.New(size).Add(text.New(headers[i], props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 2, Left: 1,
		})))
	}
	return r
}

func dataRow(values []string, cols []int, size int) core.Row {
	r := row.New(6)
	for _, i := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		r.Add(col.New(size).Add(text.New(v, props.Text{Size: 7, Top: 1, Left: 1})))
	}
	return r
}

// visibleColumns índices de las columnas que no son identificadores.
func visibleColumns(headers []string) []int {
	cols := make([]int, 0, len(headers))
	for i, h := range headers {
		if strings.HasSuffix(h, "Id") {
			continue
		}
		cols = append(cols, i)
	}
	return cols
}
