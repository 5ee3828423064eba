package entity

import (
	"math"
	"strings"
	"time"

	"github.com/jhoicas/inventario-empresas/internal/domain"
)

// MaxQuantity tope de la cantidad por par (columna INTEGER de inventory).
const MaxQuantity = math.MaxInt32

// InventoryItem cantidad en stock de un producto para una empresa.
// El par (CompanyNIT, ProductCode) es único. Inmutable: Increase/Decrease devuelven copias.
type InventoryItem struct {
	companyNIT  string
	productCode string
	quantity    int
	updatedAt   time.Time
}

// NewInventoryItem exige NIT y código no vacíos y 0 <= cantidad <= MaxQuantity.
func NewInventoryItem(companyNIT, productCode string, quantity int) (InventoryItem, error) {
	if strings.TrimSpace(companyNIT) == "" {
		return InventoryItem{}, domain.NewError(domain.ErrInvalidInventory, "company NIT is required")
	}
	if strings.TrimSpace(productCode) == "" {
		return InventoryItem{}, domain.NewError(domain.ErrInvalidInventory, "product code is required")
	}
	if quantity < 0 {
		return InventoryItem{}, domain.NewError(domain.ErrInvalidInventory, "quantity cannot be negative")
	}
	if quantity > MaxQuantity {
		return InventoryItem{}, domain.NewError(domain.ErrInvalidInventory, "quantity exceeds maximum of %d", MaxQuantity)
	}
	return InventoryItem{companyNIT: companyNIT, productCode: productCode, quantity: quantity}, nil
}

func (i InventoryItem) CompanyNIT() string   { return i.companyNIT }
func (i InventoryItem) ProductCode() string  { return i.productCode }
func (i InventoryItem) Quantity() int        { return i.quantity }
func (i InventoryItem) UpdatedAt() time.Time { return i.updatedAt }

// WithUpdatedAt devuelve una copia con la marca de tiempo de persistencia.
func (i InventoryItem) WithUpdatedAt(t time.Time) InventoryItem {
	i.updatedAt = t
	return i
}

// Increase suma delta (> 0) a la cantidad sin superar MaxQuantity.
func (i InventoryItem) Increase(delta int) (InventoryItem, error) {
	if delta <= 0 {
		return InventoryItem{}, domain.NewError(domain.ErrInvalidInventory, "increment must be positive")
	}
	if delta > MaxQuantity-i.quantity {
		return InventoryItem{}, domain.NewError(domain.ErrInvalidInventory,
			"increment %d exceeds maximum quantity %d (current %d)", delta, MaxQuantity, i.quantity)
	}
	i.quantity += delta
	return i, nil
}

// Decrease resta delta (> 0, <= cantidad actual).
func (i InventoryItem) Decrease(delta int) (InventoryItem, error) {
	if delta <= 0 {
		return InventoryItem{}, domain.NewError(domain.ErrInvalidInventory, "decrement must be positive")
	}
	if delta > i.quantity {
		return InventoryItem{}, domain.NewError(domain.ErrInsufficientStock, "insufficient stock: requested %d, available %d", delta, i.quantity)
	}
	i.quantity -= delta
	return i, nil
}
