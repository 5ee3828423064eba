package dto

import "time"

// InventoryChangeRequest body para POST /api/v1/inventory/add y /remove.
type InventoryChangeRequest struct {
	CompanyNIT  string `json:"company_nit" validate:"required"`
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int    `json:"quantity"`
}

// InventoryItemResponse estado de un par empresa/producto.
type InventoryItemResponse struct {
	CompanyNIT  string    `json:"company_nit"`
	ProductCode string    `json:"product_code"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// InventoryCheckResponse respuesta de consulta de stock. Found=false si el par no tiene registro.
type InventoryCheckResponse struct {
	CompanyNIT  string `json:"company_nit"`
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
	Found       bool   `json:"found"`
}

// InventoryLine fila del inventario de una empresa con datos del producto.
type InventoryLine struct {
	ProductCode string            `json:"product_code"`
	ProductName string            `json:"product_name"`
	Quantity    int               `json:"quantity"`
	Prices      map[string]string `json:"prices"`
	UpdatedAt   time.Time         `json:"updated_at,omitzero"`
}

// CompanyInventoryResponse inventario completo de una empresa.
type CompanyInventoryResponse struct {
	Company CompanyResponse `json:"company"`
	Items   []InventoryLine `json:"items"`
	Total   int             `json:"total_units"`
}

// InventoryReportEmailRequest body para POST /companies/:nit/inventory/report/email.
type InventoryReportEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// InventoryReportEmailResponse confirmación del encolado.
type InventoryReportEmailResponse struct {
	TaskID string `json:"task_id"`
	Queue  string `json:"queue"`
}
