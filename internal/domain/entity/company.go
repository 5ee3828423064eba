package entity

import (
	"strings"
	"unicode"

	"github.com/jhoicas/inventario-empresas/internal/domain"
)

// minNITLength longitud mínima del NIT tras normalizar.
const minNITLength = 5

// Company representa una empresa registrada (tenant). El NIT es su llave natural.
// Es inmutable: los cambios devuelven una copia nueva.
type Company struct {
	nit     string
	name    string
	address string
	phone   string
}

// NewCompany valida y normaliza (trim) los cuatro campos.
// El teléfono se valida sin '+' ni espacios, pero se guarda tal como llegó (trim).
func NewCompany(nit, name, address, phone string) (Company, error) {
	normalizedNIT, err := requiredCompanyField(nit, "NIT")
	if err != nil {
		return Company{}, err
	}
	if len([]rune(normalizedNIT)) < minNITLength {
		return Company{}, domain.NewError(domain.ErrInvalidCompany, "NIT must have at least %d characters", minNITLength)
	}
	normalizedName, err := requiredCompanyField(name, "name")
	if err != nil {
		return Company{}, err
	}
	normalizedAddress, err := requiredCompanyField(address, "address")
	if err != nil {
		return Company{}, err
	}
	normalizedPhone, err := validatePhone(phone)
	if err != nil {
		return Company{}, err
	}
	return Company{
		nit:     normalizedNIT,
		name:    normalizedName,
		address: normalizedAddress,
		phone:   normalizedPhone,
	}, nil
}

func (c Company) NIT() string     { return c.nit }
func (c Company) Name() string    { return c.name }
func (c Company) Address() string { return c.address }
func (c Company) Phone() string   { return c.phone }

// ChangeAddress devuelve una copia con la dirección reemplazada.
func (c Company) ChangeAddress(newAddress string) (Company, error) {
	address, err := requiredCompanyField(newAddress, "address")
	if err != nil {
		return Company{}, err
	}
	c.address = address
	return c, nil
}

// ChangeName devuelve una copia con el nombre reemplazado.
func (c Company) ChangeName(newName string) (Company, error) {
	name, err := requiredCompanyField(newName, "name")
	if err != nil {
		return Company{}, err
	}
	c.name = name
	return c, nil
}

// ChangePhone devuelve una copia con el teléfono reemplazado.
func (c Company) ChangePhone(newPhone string) (Company, error) {
	phone, err := validatePhone(newPhone)
	if err != nil {
		return Company{}, err
	}
	c.phone = phone
	return c, nil
}

func requiredCompanyField(value, field string) (string, error) {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return "", domain.NewError(domain.ErrInvalidCompany, "%s is required", field)
	}
	return normalized, nil
}

func validatePhone(phone string) (string, error) {
	normalized, err := requiredCompanyField(phone, "phone")
	if err != nil {
		return "", err
	}
	digits := strings.NewReplacer("+", "", " ", "").Replace(normalized)
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return "", domain.NewError(domain.ErrInvalidCompany, "phone must contain only digits and optional '+'")
	}
	return normalized, nil
}
