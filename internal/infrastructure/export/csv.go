package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/domain"
)

// CSVExporter escribe la tabla como CSV (UTF-8 o Windows-1252 para hojas de cálculo).
type CSVExporter struct {
	charset string
}

// NewCSVExporter valida el charset: vacío o "utf-8" y "windows-1252".
func NewCSVExporter(charset string) (*CSVExporter, error) {
	cs := strings.ToLower(strings.TrimSpace(charset))
	switch cs {
	case "", "utf-8", "utf8":
		cs = "utf-8"
	case CharsetWindows1252, "cp1252":
		cs = CharsetWindows1252
	default:
		return nil, fmt.Errorf("%w: charset %q no soportado", domain.ErrInvalidInput, charset)
	}
	return &CSVExporter{charset: cs}, nil
}

func (e *CSVExporter) Format() string { return FormatCSV }

// Export genera encabezado + filas. Caracteres no representables en Windows-1252 producen error.
func (e *CSVExporter) Export(t dto.ReportTable) (*usecase.ExportedReport, error) {
	var buf bytes.Buffer
	var out io.Writer = &buf
	var tw *transform.Writer
	if e.charset == CharsetWindows1252 {
		tw = transform.NewWriter(&buf, charmap.Windows1252.NewEncoder())
		out = tw
	}

	w := csv.NewWriter(out)
	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("csv: escribir encabezado: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("csv: escribir filas: %w", err)
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return nil, fmt.Errorf("csv: codificar %s: %w", e.charset, err)
		}
	}

	return &usecase.ExportedReport{
		Body:        buf.Bytes(),
		ContentType: "text/csv; charset=" + e.charset,
		Extension:   FormatCSV,
	}, nil
}
