package dto

// CreateCompanyRequest entrada para registrar una empresa.
type CreateCompanyRequest struct {
	NIT     string `json:"nit" validate:"required,min=5,max=20"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

// UpdateCompanyRequest entrada para actualizar una empresa. nil = conservar el valor actual.
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	NIT     string `json:"nit"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
