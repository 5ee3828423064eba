package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para registrar un producto.
// Prices: código de moneda → monto (acepta número o string JSON).
type CreateProductRequest struct {
	Code       string                     `json:"code" validate:"required,max=100"`
	Name       string                     `json:"name" validate:"required,max=200"`
	Features   []string                   `json:"features"`
	Prices     map[string]decimal.Decimal `json:"prices" validate:"required"`
	CompanyNIT string                     `json:"company_nit" validate:"required"`
}

// ProductResponse salida de un producto. Los precios van con 2 decimales ("100.00").
type ProductResponse struct {
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	Features   []string          `json:"features"`
	Prices     map[string]string `json:"prices"`
	CompanyNIT string            `json:"company_nit"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
