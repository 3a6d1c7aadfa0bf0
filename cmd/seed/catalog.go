package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventory-ims/internal/application/dto"
)

// catalog archivo de carga inicial:
//
//	<catalogo>
//	  <bodega nombre="Central" ubicacion="Bogotá"/>
//	  <producto nombre="Laptop" sku="LAP-001" categoria="Electrónica" precio="2500000" descripcion="..."/>
//	</catalogo>
type catalog struct {
	Warehouses []struct {
		Name     string `xml:"nombre,attr"`
		Location string `xml:"ubicacion,attr"`
	} `xml:"bodega"`
	Products []struct {
		Name        string `xml:"nombre,attr"`
		SKU         string `xml:"sku,attr"`
		Category    string `xml:"categoria,attr"`
		Price       string `xml:"precio,attr"`
		Description string `xml:"descripcion,attr"`
	} `xml:"producto"`
}

// parseCatalog decodifica el XML (UTF-8, ISO-8859-1 o Windows-1252) y lo convierte en requests.
func parseCatalog(r io.Reader) ([]dto.WarehouseRequest, []dto.CreateProductRequest, error) {
	var c catalog
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, nil, fmt.Errorf("decodificar catálogo: %w", err)
	}

	warehouses := make([]dto.WarehouseRequest, 0, len(c.Warehouses))
	for _, w := range c.Warehouses {
		warehouses = append(warehouses, dto.WarehouseRequest{
			Name:     strings.TrimSpace(w.Name),
			Location: strings.TrimSpace(w.Location),
		})
	}

	products := make([]dto.CreateProductRequest, 0, len(c.Products))
	for _, p := range c.Products {
		price := decimal.Zero
		if s := strings.TrimSpace(p.Price); s != "" {
			d, err := decimal.NewFromString(s)
			if err != nil {
				return nil, nil, fmt.Errorf("precio de %q: %w", p.SKU, err)
			}
			price = d
		}
		products = append(products, dto.CreateProductRequest{
			Name:        strings.TrimSpace(p.Name),
			SKU:         strings.TrimSpace(p.SKU),
			Category:    strings.TrimSpace(p.Category),
			Price:       price,
			Description: strings.TrimSpace(p.Description),
		})
	}
	return warehouses, products, nil
}
