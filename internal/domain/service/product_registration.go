package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
)

// ProductRegistrationService aplica la regla "todo producto pertenece a una empresa existente".
type ProductRegistrationService struct {
	companies repository.CompanyRepository
}

// NewProductRegistrationService construye el servicio con el puerto de empresas.
func NewProductRegistrationService(companies repository.CompanyRepository) *ProductRegistrationService {
	return &ProductRegistrationService{companies: companies}
}

// Register verifica la empresa y construye el producto. No persiste.
// Los precios deben llegar ya convertidos a Money.
// Errores de producto o empresa se reetiquetan como ErrInvalidProduct; los de precio se propagan tal cual.
func (s *ProductRegistrationService) Register(ctx context.Context, code, name string, features []string, prices map[string]entity.Money, companyNIT string) (entity.Product, error) {
	ok, err := s.companies.Exists(ctx, companyNIT)
	if err != nil {
		return entity.Product{}, fmt.Errorf("check company exists: %w", err)
	}
	if !ok {
		return entity.Product{}, domain.NewError(domain.ErrInvalidCompany,
			"cannot register product: company with NIT '%s' does not exist", companyNIT)
	}

	product, err := entity.NewProduct(code, name, features, prices, companyNIT)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProduct) || errors.Is(err, domain.ErrInvalidCompany) {
			return entity.Product{}, domain.Wrap(domain.ErrInvalidProduct, "failed to register product", err)
		}
		return entity.Product{}, err
	}
	return product, nil
}
