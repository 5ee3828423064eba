package repository

import (
	"context"

	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

// ProductRepository puerto mínimo que consumen los servicios de dominio.
// Exists siempre se acota a la empresa dueña del producto.
type ProductRepository interface {
	Exists(ctx context.Context, code, companyNIT string) (bool, error)
}

// ProductStore define el puerto de persistencia completo para Product (DIP).
type ProductStore interface {
	ProductRepository
	// Create devuelve domain.ErrDuplicate si el código ya existe.
	Create(ctx context.Context, product entity.Product) error
	// GetByCode devuelve (nil, nil) si no existe.
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyNIT string, limit, offset int) ([]entity.Product, error)
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, code string) error
}
