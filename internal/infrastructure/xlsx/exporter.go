// Package xlsx exporta el inventario de una empresa a Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/jhoicas/inventario-empresas/internal/application/report"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

const sheetName = "Inventario"

// Exporter implementa report.SpreadsheetRenderer con tealeg/xlsx.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

var _ report.SpreadsheetRenderer = (*Exporter)(nil)

// RenderInventoryXLSX una fila por producto y una columna de precio por moneda soportada.
func (e *Exporter) RenderInventoryXLSX(_ context.Context, doc report.Document) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: agregar hoja: %w", err)
	}

	currencies := currencyColumns(doc)
	headers := append([]string{"Código", "Nombre", "Cantidad"}, currencies...)
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.Value = h
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "FF2B6CB0"
		cell.GetStyle().Font.Color = "FFFFFFFF"
	}

	for _, it := range doc.Items {
		r := sheet.AddRow()
		r.AddCell().SetString(it.ProductCode)
		r.AddCell().SetString(it.ProductName)
		r.AddCell().SetInt(it.Quantity)
		for _, c := range currencies {
			cell := r.AddCell()
			raw, ok := it.Prices[c]
			if !ok {
				continue
			}
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				cell.SetString(raw)
				continue
			}
			f, _ := amount.Float64()
			cell.SetFloatWithFormat(f, "#,##0.00")
		}
	}

	total := sheet.AddRow()
	label := total.AddCell()
	label.Value = "Cantidad total"
	label.GetStyle().Font.Bold = true
	total.AddCell()
	total.AddCell().SetInt(doc.TotalUnits)

	sheet.SetColWidth(1, 1, 14)
	sheet.SetColWidth(2, 2, 32)
	sheet.SetColWidth(3, len(headers), 14)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}

// currencyColumns monedas soportadas presentes en algún producto, en orden fijo.
func currencyColumns(doc report.Document) []string {
	seen := make(map[string]bool)
	for _, it := range doc.Items {
		for c := range it.Prices {
			seen[c] = true
		}
	}
	var out []string
	for _, c := range entity.SupportedCurrencies() {
		if seen[string(c)] {
			out = append(out, string(c))
			delete(seen, string(c))
		}
	}
	// Códigos fuera del catálogo al final, alfabéticos.
	rest := make([]string, 0, len(seen))
	for c := range seen {
		rest = append(rest, c)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
