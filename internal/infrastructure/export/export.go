// Package export implementa usecase.ReportExporter para CSV, XML y PDF.
package export

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-ims/internal/application/usecase"
	"github.com/jhoicas/inventory-ims/internal/domain"
)

// Formatos soportados además de JSON (que resuelve el handler directamente).
const (
	FormatCSV = "csv"
	FormatXML = "xml"
	FormatPDF = "pdf"
)

// CharsetWindows1252 charset alternativo para CSV.
const CharsetWindows1252 = "windows-1252"

// ForFormat devuelve el exportador del formato pedido. charset solo aplica a CSV.
func ForFormat(format, charset string) (usecase.ReportExporter, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		e, err := NewCSVExporter(charset)
		if err != nil {
			return nil, err
		}
		return e, nil
	case FormatXML:
		return NewXMLExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	}
	return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
}
