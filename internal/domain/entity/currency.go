package entity

import (
	"strings"

	"github.com/jhoicas/inventario-empresas/internal/domain"
)

// Currency código de moneda soportado por la plataforma (conjunto cerrado).
type Currency string

// Monedas soportadas. Deben coincidir con las que acepta la capa de serialización.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	COP Currency = "COP"
)

var supportedCurrencies = []Currency{USD, EUR, COP}

// SupportedCurrencies devuelve las monedas válidas en orden estable.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// ParseCurrency normaliza (trim + mayúsculas) y valida el código.
func ParseCurrency(code string) (Currency, error) {
	normalized := normalizeCurrencyCode(code)
	for _, c := range supportedCurrencies {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", domain.NewError(domain.ErrUnsupportedCurrency, "unsupported currency code: %s", normalized)
}

// Code devuelve el código ISO 4217.
func (c Currency) Code() string { return string(c) }

// IsValid informa si c pertenece al conjunto soportado.
func (c Currency) IsValid() bool {
	for _, s := range supportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

func normalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
