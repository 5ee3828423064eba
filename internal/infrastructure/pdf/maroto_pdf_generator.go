// Package pdf genera el reporte de inventario de una empresa en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Inventario                              │
//	│  Empresa + NIT  │  Fecha de generación                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Nombre | Cantidad | Precios                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total de productos | Cantidad total               │
//	│  RECOMENDACIONES (IA, opcional)                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 26, Green: 54, Blue: 93}
	colorHeader  = &props.Color{Red: 43, Green: 108, Blue: 176}
	colorGray    = &props.Color{Red: 74, Green: 85, Blue: 104}
	colorAlert   = &props.Color{Red: 229, Green: 62, Blue: 62}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 247, Green: 250, Blue: 252}
)

// numbers formatea montos con separador de miles (1,234.50).
var numbers = message.NewPrinter(language.English)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ report.PDFRenderer = (*MarotoPDFGenerator)(nil)

// RenderInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderInventoryPDF(_ context.Context, doc report.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(20).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(doc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(4))

	if len(doc.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay productos en el inventario.", props.Text{
				Size: 12, Align: align.Center, Color: colorAlert, Top: 2,
			}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(doc.Items)...)
	}

	m.AddRows(row.New(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	if doc.Recommendations != "" {
		m.AddRows(recommendationRows(doc.Recommendations)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: título centrado, empresa y fecha de generación.
func headerRows(doc report.Document) []core.Row {
	return []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 20, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New("Empresa: "+doc.Company.Name, props.Text{Size: 12, Align: align.Center, Top: 1}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New("NIT: "+doc.Company.NIT, props.Text{Size: 12, Align: align.Center, Top: 1}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New("Fecha de generación: "+doc.GeneratedAt.Format("02/01/2006 15:04:05"), props.Text{
				Size: 10, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)),
	}
}

// tableHeaderRow: cabecera con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center,
			Color: colorWhite, Top: 2,
		}))
	}
	return row.New(9).Add(
		h("Código", 2),
		h("Nombre", 4),
		h("Cantidad", 2),
		h("Precios", 4),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

// tableDetailRows: una fila por producto, con filas alternadas.
func tableDetailRows(items []dto.InventoryLine) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		r := row.New(8).Add(
			col.New(2).Add(text.New(it.ProductCode, props.Text{Size: 10, Top: 2, Left: 1})),
			col.New(4).Add(text.New(it.ProductName, props.Text{Size: 10, Top: 2, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 10, Align: align.Center, Top: 2})),
			col.New(4).Add(text.New(FormatPrices(it.Prices), props.Text{Size: 9, Top: 2, Left: 1})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

// totalsRow: número de productos y unidades.
func totalsRow(doc report.Document) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de productos: %d | Cantidad total: %d", len(doc.Items), doc.TotalUnits), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorGray, Top: 3,
		}),
	))
}

// recommendationRows: texto de IA partido en párrafos; la altura de cada fila se ajusta al texto.
func recommendationRows(recommendations string) []core.Row {
	rows := []core.Row{
		row.New(6),
		row.New(8).Add(col.New(12).Add(
			text.New("Recomendaciones", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, p := range strings.Split(recommendations, "\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rows = append(rows, row.New().Add(col.New(12).Add(
			text.New(p, props.Text{Size: 9, Top: 1}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatPrices "COP: $4,000,000.00, USD: $1,000.00" ordenado por moneda; "N/A" sin precios.
func FormatPrices(prices map[string]string) string {
	if len(prices) == 0 {
		return "N/A"
	}
	currencies := make([]string, 0, len(prices))
	for c := range prices {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	parts := make([]string, 0, len(currencies))
	for _, c := range currencies {
		parts = append(parts, c+": "+formatAmount(prices[c]))
	}
	return strings.Join(parts, ", ")
}

// formatAmount "$1,234.50"; si no es numérico se deja tal cual.
func formatAmount(raw string) string {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	d = d.Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Abs().Shift(2).IntPart()
	sign := ""
	if d.IsNegative() {
		sign = "-"
		whole = whole.Abs()
	}
	return numbers.Sprintf("%s$%d.%02d", sign, whole.IntPart(), cents)
}
