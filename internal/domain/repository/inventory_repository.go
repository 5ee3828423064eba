package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

// InventoryRepository puerto de lectura/escritura de stock por (empresa, producto).
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	// Find devuelve (nil, nil) si el par no tiene registro.
	Find(ctx context.Context, companyNIT, productCode string) (*entity.InventoryItem, error)
	// Save inserta o actualiza el registro del par y devuelve el updated_at persistido.
	Save(ctx context.Context, item entity.InventoryItem) (time.Time, error)
}

// InventoryStore agrega las consultas de listado usadas fuera del dominio.
type InventoryStore interface {
	InventoryRepository
	ListByCompany(ctx context.Context, companyNIT string) ([]entity.InventoryItem, error)
}
