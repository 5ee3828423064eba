package repository

import (
	"context"

	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

// CompanyRepository puerto mínimo que consumen los servicios de dominio.
type CompanyRepository interface {
	Exists(ctx context.Context, nit string) (bool, error)
}

// CompanyStore define el puerto de persistencia completo para Company (DIP).
// La implementación vive en infrastructure.
type CompanyStore interface {
	CompanyRepository
	// Create devuelve domain.ErrDuplicate si el NIT ya existe.
	Create(ctx context.Context, company entity.Company) error
	// GetByNIT devuelve (nil, nil) si no existe.
	GetByNIT(ctx context.Context, nit string) (*entity.Company, error)
	// Update devuelve domain.ErrNotFound si no existe.
	Update(ctx context.Context, company entity.Company) error
	List(ctx context.Context, limit, offset int) ([]entity.Company, error)
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, nit string) error
}
