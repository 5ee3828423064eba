package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

func TestNewProduct_NormalizaYCopia(t *testing.T) {
	usd := mustMoney(t, "100", entity.USD)
	features := []string{" rojo ", "talla M"}
	prices := map[string]entity.Money{" usd ": usd}

	p, err := entity.NewProduct(" PROD001 ", " Camiseta ", features, prices, " 123456789 ")
	require.NoError(t, err)

	assert.Equal(t, "PROD001", p.Code())
	assert.Equal(t, "Camiseta", p.Name())
	assert.Equal(t, []string{"rojo", "talla M"}, p.Features())
	assert.Equal(t, "123456789", p.CompanyNIT())
	assert.Equal(t, []string{"USD"}, p.PriceCurrencies())

	// Mutar la entrada o las copias no altera el producto.
	features[0] = "azul"
	prices["EUR"] = usd
	got := p.Prices()
	delete(got, "USD")
	p.Features()[0] = "verde"

	assert.Equal(t, []string{"rojo", "talla M"}, p.Features())
	assert.Len(t, p.Prices(), 1)
}

func TestNewProduct_FeaturesNilEsVacio(t *testing.T) {
	p, err := entity.NewProduct("P1", "Producto", nil, map[string]entity.Money{"COP": mustMoney(t, "5000", entity.COP)}, "12345")
	require.NoError(t, err)
	assert.NotNil(t, p.Features())
	assert.Empty(t, p.Features())
}

func TestProduct_PriceFor(t *testing.T) {
	p, err := entity.NewProduct("P1", "Producto", nil, map[string]entity.Money{"USD": mustMoney(t, "100.00", entity.USD)}, "12345")
	require.NoError(t, err)

	price, err := p.PriceFor(" usd")
	require.NoError(t, err)
	assert.Equal(t, "100.00", price.StringFixed())

	_, err = p.PriceFor("eur")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Contains(t, err.Error(), "price is not defined for EUR")
}

func TestNewProduct_Validaciones(t *testing.T) {
	usd := mustMoney(t, "1", entity.USD)
	valid := map[string]entity.Money{"USD": usd}

	cases := []struct {
		name     string
		code     string
		pname    string
		features []string
		prices   map[string]entity.Money
		nit      string
		kind     error
		wantMsg  string
	}{
		{"código vacío", " ", "X", nil, valid, "12345", domain.ErrInvalidProduct, "code is required"},
		{"nombre vacío", "P1", "", nil, valid, "12345", domain.ErrInvalidProduct, "name is required"},
		{"feature vacía", "P1", "X", []string{"ok", "  "}, valid, "12345", domain.ErrInvalidProduct, "feature is required"},
		{"sin precios", "P1", "X", nil, nil, "12345", domain.ErrInvalidPrice, "at least one price is required"},
		{"precio sin construir", "P1", "X", nil, map[string]entity.Money{"USD": {}}, "12345", domain.ErrInvalidPrice, "price must be a Money value"},
		{"moneda duplicada", "P1", "X", nil, map[string]entity.Money{"USD": usd, " usd": usd}, "12345", domain.ErrInvalidPrice, "duplicated price"},
		{"nit vacío", "P1", "X", nil, valid, "", domain.ErrInvalidProduct, "company NIT is required"},
		// Las características se validan antes que los precios.
		{"orden de validación", "P1", "X", []string{""}, nil, "", domain.ErrInvalidProduct, "feature is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.NewProduct(tc.code, tc.pname, tc.features, tc.prices, tc.nit)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
