package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
)

// XMLExporter genera <report><row>...</row></report>. El ETag es el SHA-256 de la forma canónica
// del documento compacto.
type XMLExporter struct{}

// NewXMLExporter construye el exportador.
func NewXMLExporter() *XMLExporter { return &XMLExporter{} }

func (e *XMLExporter) Format() string { return FormatXML }

func (e *XMLExporter) Export(t dto.ReportTable) (*usecase.ExportedReport, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("report")
	root.CreateAttr("name", t.Name)
	root.CreateAttr("title", t.Title)
	for _, r := range t.Rows {
		row := root.CreateElement("row")
		for i, h := range t.Headers {
			if i < len(r) {
				row.CreateElement(h).SetText(r[i])
			}
		}
	}

	compact, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	canonical, err := canonicalizeXML(compact)
	if err != nil {
		return nil, fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)

	doc.Indent(2)
	pretty, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	body := append([]byte(xml.Header), pretty...)

	return &usecase.ExportedReport{
		Body:        body,
		ContentType: "application/xml; charset=utf-8",
		Extension:   FormatXML,
		ETag:        `"` + hex.EncodeToString(sum[:]) + `"`,
	}, nil
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
