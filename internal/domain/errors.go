package domain

import (
	"errors"
	"fmt"
)

// Tipos de error de dominio (sin dependencias externas).
// Se comparan con errors.Is; el mensaje legible vive en Error.
var (
	ErrInvalidCompany   = errors.New("invalid company")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidInventory = errors.New("invalid inventory")

	// ErrUnsupportedCurrency es un subtipo de ErrInvalidPrice.
	ErrUnsupportedCurrency = fmt.Errorf("%w: unsupported currency", ErrInvalidPrice)
	// ErrInsufficientStock es un subtipo de ErrInvalidInventory.
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrInvalidInventory)
)

// Errores de aplicación.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// Error es un fallo de dominio con tipo (Kind), mensaje y causa opcional.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// NewError construye un error del tipo kind con mensaje formateado.
func NewError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap reetiqueta err con el tipo kind anteponiendo prefix al mensaje.
// La causa se conserva, así que errors.Is sigue reconociendo el tipo original.
func Wrap(kind error, prefix string, err error) *Error {
	return &Error{Kind: kind, Msg: prefix, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

// Unwrap expone el tipo y la causa para errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsValidation informa si err pertenece a la taxonomía de validación de dominio.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidCompany) ||
		errors.Is(err, ErrInvalidProduct) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidInventory) ||
		errors.Is(err, ErrInvalidInput)
}
