package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
	"github.com/jhoicas/inventario-empresas/internal/domain/service"
)

// ProductUseCase registro y consulta de productos.
type ProductUseCase struct {
	products     repository.ProductStore
	companies    repository.CompanyStore
	registration *service.ProductRegistrationService
	stock        ProductStockInvalidator
}

// ProductStockInvalidator borra la entrada de caché de stock de un par empresa/producto.
type ProductStockInvalidator interface {
	Invalidate(ctx context.Context, companyNIT, productCode string) error
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductStore, companies repository.CompanyStore) *ProductUseCase {
	return &ProductUseCase{
		products:     products,
		companies:    companies,
		registration: service.NewProductRegistrationService(companies),
	}
}

// WithStockCache activa la invalidación de caché al eliminar productos.
func (uc *ProductUseCase) WithStockCache(stock ProductStockInvalidator) *ProductUseCase {
	uc.stock = stock
	return uc
}

// Register convierte los montos a Money, valida con el servicio de dominio y persiste.
// Devuelve domain.ErrDuplicate si el código ya existe.
func (uc *ProductUseCase) Register(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := tracer.Start(ctx, "product.register", trace.WithAttributes(
		attribute.String("product.code", in.Code),
		attribute.String("company.nit", in.CompanyNIT),
	))
	defer span.End()

	prices, err := toMoney(in.Prices)
	if err != nil {
		return nil, err
	}
	product, err := uc.registration.Register(ctx, in.Code, in.Name, in.Features, prices, in.CompanyNIT)
	if err != nil {
		return nil, err
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// GetByCode obtiene un producto. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := dto.ProductFromEntity(*product)
	return &out, nil
}

// ListByCompany productos de una empresa. Devuelve domain.ErrNotFound si la empresa no existe.
func (uc *ProductUseCase) ListByCompany(ctx context.Context, companyNIT string, limit, offset int) (*dto.ProductListResponse, error) {
	exists, err := uc.companies.Exists(ctx, companyNIT)
	if err != nil {
		return nil, fmt.Errorf("check company exists: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	page := dto.NewPageRequest(limit, offset)
	list, err := uc.products.ListByCompany(ctx, companyNIT, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFromEntity(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  page.Response(),
	}, nil
}

// Delete elimina el producto (y su inventario). Con caché activa borra además la entrada del par
// una vez confirmado el borrado. Devuelve domain.ErrNotFound si el producto no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, code string) error {
	if uc.stock == nil {
		return uc.products.Delete(ctx, code)
	}

	product, err := uc.products.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.products.Delete(ctx, code); err != nil {
		return err
	}
	// Si falla, la entrada expira por TTL.
	_ = uc.stock.Invalidate(ctx, product.CompanyNIT(), code)
	return nil
}

// toMoney valida cada moneda y monto. Se recorre en orden para que el error sea determinista;
// las llaves se pasan sin normalizar para que el producto detecte duplicados ("usd" y "USD").
func toMoney(raw map[string]decimal.Decimal) (map[string]entity.Money, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]entity.Money, len(raw))
	for _, k := range keys {
		currency, err := entity.ParseCurrency(k)
		if err != nil {
			return nil, err
		}
		m, err := entity.NewMoney(raw[k], currency)
		if err != nil {
			return nil, err
		}
		out[k] = m
	}
	return out, nil
}
