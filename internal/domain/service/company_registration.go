package service

import (
	"errors"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

// CompanyRegistrationService punto único de construcción de empresas.
// Políticas futuras de registro (p. ej. verificación del NIT) viven aquí y no en la entidad.
type CompanyRegistrationService struct{}

// NewCompanyRegistrationService construye el servicio.
func NewCompanyRegistrationService() *CompanyRegistrationService {
	return &CompanyRegistrationService{}
}

// Register valida los datos y devuelve la empresa. No persiste.
func (s *CompanyRegistrationService) Register(nit, name, address, phone string) (entity.Company, error) {
	company, err := entity.NewCompany(nit, name, address, phone)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCompany) {
			return entity.Company{}, domain.Wrap(domain.ErrInvalidCompany, "failed to register company", err)
		}
		return entity.Company{}, err
	}
	return company, nil
}
