package dto

import "github.com/jhoicas/inventario-empresas/internal/domain/entity"

// CompanyFromEntity convierte la entidad en su salida HTTP.
func CompanyFromEntity(c entity.Company) CompanyResponse {
	return CompanyResponse{
		NIT:     c.NIT(),
		Name:    c.Name(),
		Address: c.Address(),
		Phone:   c.Phone(),
	}
}

// ProductFromEntity convierte la entidad en su salida HTTP (precios con 2 decimales).
func ProductFromEntity(p entity.Product) ProductResponse {
	return ProductResponse{
		Code:       p.Code(),
		Name:       p.Name(),
		Features:   p.Features(),
		Prices:     PricesFromEntity(p.Prices()),
		CompanyNIT: p.CompanyNIT(),
	}
}

// PricesFromEntity moneda → monto fijo ("100.00").
func PricesFromEntity(prices map[string]entity.Money) map[string]string {
	out := make(map[string]string, len(prices))
	for k, m := range prices {
		out[k] = m.StringFixed()
	}
	return out
}

// InventoryItemFromEntity convierte un registro de stock en su salida HTTP.
func InventoryItemFromEntity(i entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		CompanyNIT:  i.CompanyNIT(),
		ProductCode: i.ProductCode(),
		Quantity:    i.Quantity(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

// UserFromEntity salida de usuario sin password.
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
