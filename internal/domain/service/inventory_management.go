package service

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
)

// InventoryManagementService coordina las operaciones de stock validando empresa y producto.
// No es seguro para read-modify-write concurrente por sí solo: quien lo use debe
// entregarle repositorios que serialicen el par (p. ej. dentro de una transacción con bloqueo).
type InventoryManagementService struct {
	companies repository.CompanyRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
}

// NewInventoryManagementService construye el servicio con sus tres puertos.
func NewInventoryManagementService(
	companies repository.CompanyRepository,
	products repository.ProductRepository,
	inventory repository.InventoryRepository,
) *InventoryManagementService {
	return &InventoryManagementService{companies: companies, products: products, inventory: inventory}
}

// AddToInventory crea el registro del par con quantity (0 permitido) o incrementa el existente.
// En el segundo caso quantity debe ser > 0.
func (s *InventoryManagementService) AddToInventory(ctx context.Context, companyNIT, productCode string, quantity int) (entity.InventoryItem, error) {
	if err := s.ensureCompany(ctx, companyNIT); err != nil {
		return entity.InventoryItem{}, err
	}
	ok, err := s.products.Exists(ctx, productCode, companyNIT)
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("check product exists: %w", err)
	}
	if !ok {
		return entity.InventoryItem{}, domain.NewError(domain.ErrInvalidProduct,
			"cannot manage inventory: product '%s' does not exist for company '%s'", productCode, companyNIT)
	}

	existing, err := s.inventory.Find(ctx, companyNIT, productCode)
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("find inventory: %w", err)
	}
	var updated entity.InventoryItem
	if existing != nil {
		updated, err = existing.Increase(quantity)
	} else {
		updated, err = entity.NewInventoryItem(companyNIT, productCode, quantity)
	}
	if err != nil {
		return entity.InventoryItem{}, err
	}

	savedAt, err := s.inventory.Save(ctx, updated)
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("save inventory: %w", err)
	}
	return updated.WithUpdatedAt(savedAt), nil
}

// RemoveFromInventory descuenta quantity del registro existente del par.
func (s *InventoryManagementService) RemoveFromInventory(ctx context.Context, companyNIT, productCode string, quantity int) (entity.InventoryItem, error) {
	if err := s.ensureCompany(ctx, companyNIT); err != nil {
		return entity.InventoryItem{}, err
	}
	existing, err := s.inventory.Find(ctx, companyNIT, productCode)
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("find inventory: %w", err)
	}
	if existing == nil {
		return entity.InventoryItem{}, domain.NewError(domain.ErrInvalidProduct,
			"product '%s' is not in inventory for company '%s'", productCode, companyNIT)
	}

	updated, err := existing.Decrease(quantity)
	if err != nil {
		return entity.InventoryItem{}, err
	}
	savedAt, err := s.inventory.Save(ctx, updated)
	if err != nil {
		return entity.InventoryItem{}, fmt.Errorf("save inventory: %w", err)
	}
	return updated.WithUpdatedAt(savedAt), nil
}

// CheckInventory lectura sin validar empresa ni producto. found=false si el par no tiene registro.
func (s *InventoryManagementService) CheckInventory(ctx context.Context, companyNIT, productCode string) (quantity int, found bool, err error) {
	item, err := s.inventory.Find(ctx, companyNIT, productCode)
	if err != nil {
		return 0, false, fmt.Errorf("find inventory: %w", err)
	}
	if item == nil {
		return 0, false, nil
	}
	return item.Quantity(), true, nil
}

func (s *InventoryManagementService) ensureCompany(ctx context.Context, companyNIT string) error {
	ok, err := s.companies.Exists(ctx, companyNIT)
	if err != nil {
		return fmt.Errorf("check company exists: %w", err)
	}
	if !ok {
		return domain.NewError(domain.ErrInvalidCompany,
			"cannot manage inventory: company with NIT '%s' does not exist", companyNIT)
	}
	return nil
}
