package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-empresas/internal/domain"
)

// moneyPlaces cantidad de decimales con la que se almacena todo monto.
const moneyPlaces = 2

// Money monto exacto (decimal, nunca float) en una moneda. Inmutable.
// El valor cero de Money no es válido; usar NewMoney o ParseMoney.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney redondea a 2 decimales (mitad hacia arriba) y exige monto > 0.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if !currency.IsValid() {
		return Money{}, domain.NewError(domain.ErrUnsupportedCurrency, "unsupported currency code: %s", currency)
	}
	// decimal.Round redondea la mitad alejándose de cero (equivale a ROUND_HALF_UP).
	rounded := amount.Round(moneyPlaces)
	if !rounded.IsPositive() {
		return Money{}, domain.NewError(domain.ErrInvalidPrice, "amount must be greater than zero")
	}
	return Money{amount: rounded, currency: currency}, nil
}

// ParseMoney parsea un monto decimal exacto ("100.00", "0.005") y construye Money.
func ParseMoney(raw string, currency Currency) (Money, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, domain.Wrap(domain.ErrInvalidPrice, "invalid price amount", err)
	}
	return NewMoney(amount, currency)
}

// Amount devuelve el monto normalizado a 2 decimales.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency devuelve la moneda.
func (m Money) Currency() Currency { return m.currency }

// IsZero informa si m es el valor cero (no construido).
func (m Money) IsZero() bool { return m.currency == "" }

// Add suma dos montos de la misma moneda y devuelve un nuevo Money.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, domain.NewError(domain.ErrInvalidPrice, "cannot add amounts with different currencies")
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Equal compara monto y moneda.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// StringFixed devuelve el monto con exactamente 2 decimales ("100.00").
func (m Money) StringFixed() string { return m.amount.StringFixed(moneyPlaces) }

func (m Money) String() string {
	return m.StringFixed() + " " + string(m.currency)
}
