package entity

import (
	"sort"
	"strings"

	"github.com/jhoicas/inventario-empresas/internal/domain"
)

// Product representa un producto del catálogo de una empresa.
// Code es la llave; CompanyNIT es sólo una referencia por identificador.
type Product struct {
	code       string
	name       string
	features   []string
	prices     map[string]Money
	companyNIT string
}

// NewProduct valida en orden: código, nombre, características, precios y NIT.
// Las llaves de precios se normalizan a mayúsculas sin espacios.
func NewProduct(code, name string, features []string, prices map[string]Money, companyNIT string) (Product, error) {
	normalizedCode, err := requiredProductField(code, "code")
	if err != nil {
		return Product{}, err
	}
	normalizedName, err := requiredProductField(name, "name")
	if err != nil {
		return Product{}, err
	}
	normalizedFeatures := make([]string, 0, len(features))
	for _, f := range features {
		feature, err := requiredProductField(f, "feature")
		if err != nil {
			return Product{}, err
		}
		normalizedFeatures = append(normalizedFeatures, feature)
	}
	normalizedPrices, err := normalizePrices(prices)
	if err != nil {
		return Product{}, err
	}
	normalizedNIT, err := requiredProductField(companyNIT, "company NIT")
	if err != nil {
		return Product{}, err
	}
	return Product{
		code:       normalizedCode,
		name:       normalizedName,
		features:   normalizedFeatures,
		prices:     normalizedPrices,
		companyNIT: normalizedNIT,
	}, nil
}

func (p Product) Code() string       { return p.code }
func (p Product) Name() string       { return p.name }
func (p Product) CompanyNIT() string { return p.companyNIT }

// Features devuelve una copia; nunca nil.
func (p Product) Features() []string {
	out := make([]string, len(p.features))
	copy(out, p.features)
	return out
}

// Prices devuelve una copia del mapa moneda → precio.
func (p Product) Prices() map[string]Money {
	out := make(map[string]Money, len(p.prices))
	for k, v := range p.prices {
		out[k] = v
	}
	return out
}

// PriceCurrencies devuelve las llaves de precios ordenadas.
func (p Product) PriceCurrencies() []string {
	keys := make([]string, 0, len(p.prices))
	for k := range p.prices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PriceFor busca el precio por código de moneda (normalizado).
func (p Product) PriceFor(currencyCode string) (Money, error) {
	key := normalizeCurrencyCode(currencyCode)
	price, ok := p.prices[key]
	if !ok {
		return Money{}, domain.NewError(domain.ErrInvalidPrice, "price is not defined for %s", key)
	}
	return price, nil
}

func normalizePrices(prices map[string]Money) (map[string]Money, error) {
	if len(prices) == 0 {
		return nil, domain.NewError(domain.ErrInvalidPrice, "at least one price is required")
	}
	// Orden estable para que el error reportado sea determinista.
	keys := make([]string, 0, len(prices))
	for k := range prices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]Money, len(prices))
	for _, k := range keys {
		price := prices[k]
		if price.IsZero() {
			return nil, domain.NewError(domain.ErrInvalidPrice, "price must be a Money value")
		}
		key := normalizeCurrencyCode(k)
		if _, dup := out[key]; dup {
			return nil, domain.NewError(domain.ErrInvalidPrice, "duplicated price for currency is not allowed")
		}
		out[key] = price
	}
	return out, nil
}

func requiredProductField(value, field string) (string, error) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return "", domain.NewError(domain.ErrInvalidProduct, "%s is required", field)
	}
	return normalized, nil
}
