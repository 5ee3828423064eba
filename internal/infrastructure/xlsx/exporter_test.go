package xlsx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tealeg "github.com/tealeg/xlsx/v3"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/application/report"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/xlsx"
)

func cellValue(t *testing.T, sheet *tealeg.Sheet, row, col int) string {
	t.Helper()
	c, err := sheet.Cell(row, col)
	require.NoError(t, err)
	return c.Value
}

func TestRenderInventoryXLSX_FilasYColumnas(t *testing.T) {
	doc := report.Document{
		Company: dto.CompanyResponse{NIT: "900123456", Name: "Acme"},
		Items: []dto.InventoryLine{
			{ProductCode: "PROD001", ProductName: "Laptop", Quantity: 50, Prices: map[string]string{"COP": "4000000.00", "USD": "1000.00"}},
			{ProductCode: "PROD002", ProductName: "Mouse", Quantity: 3, Prices: map[string]string{"EUR": "9.90"}},
		},
		TotalUnits: 53,
	}

	data, err := xlsx.NewExporter().RenderInventoryXLSX(context.Background(), doc)
	require.NoError(t, err)

	file, err := tealeg.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, "Inventario", sheet.Name)

	// Las monedas siguen el orden del catálogo: USD, EUR, COP.
	assert.Equal(t, "Código", cellValue(t, sheet, 0, 0))
	assert.Equal(t, "Cantidad", cellValue(t, sheet, 0, 2))
	assert.Equal(t, "USD", cellValue(t, sheet, 0, 3))
	assert.Equal(t, "EUR", cellValue(t, sheet, 0, 4))
	assert.Equal(t, "COP", cellValue(t, sheet, 0, 5))

	assert.Equal(t, "PROD001", cellValue(t, sheet, 1, 0))
	assert.Equal(t, "50", cellValue(t, sheet, 1, 2))
	assert.Equal(t, "", cellValue(t, sheet, 1, 4), "sin precio en EUR")
	assert.Equal(t, "Mouse", cellValue(t, sheet, 2, 1))

	assert.Equal(t, "Cantidad total", cellValue(t, sheet, 3, 0))
	assert.Equal(t, "53", cellValue(t, sheet, 3, 2))
}

func TestRenderInventoryXLSX_Vacio(t *testing.T) {
	data, err := xlsx.NewExporter().RenderInventoryXLSX(context.Background(), report.Document{})
	require.NoError(t, err)

	file, err := tealeg.OpenBinary(data)
	require.NoError(t, err)
	sheet := file.Sheets[0]
	assert.Equal(t, "Código", cellValue(t, sheet, 0, 0))
	assert.Equal(t, "Cantidad total", cellValue(t, sheet, 1, 0))
	assert.Equal(t, "0", cellValue(t, sheet, 1, 2))
}
