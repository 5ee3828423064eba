package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
	"github.com/jhoicas/inventario-empresas/internal/domain/service"
)

var tracer = otel.Tracer("usecase")

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo         repository.CompanyStore
	registration *service.CompanyRegistrationService
	stock        StockInvalidator
}

// StockInvalidator borra las entradas de caché de stock de una empresa.
type StockInvalidator interface {
	InvalidateCompany(ctx context.Context, companyNIT string) error
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyStore) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, registration: service.NewCompanyRegistrationService()}
}

// WithStockCache activa la invalidación de caché al eliminar empresas.
func (uc *CompanyUseCase) WithStockCache(stock StockInvalidator) *CompanyUseCase {
	uc.stock = stock
	return uc
}

// Register valida y persiste una empresa nueva. Devuelve domain.ErrDuplicate si el NIT ya existe.
func (uc *CompanyUseCase) Register(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	ctx, span := tracer.Start(ctx, "company.register", trace.WithAttributes(attribute.String("company.nit", in.NIT)))
	defer span.End()

	company, err := uc.registration.Register(in.NIT, in.Name, in.Address, in.Phone)
	if err != nil {
		return nil, err
	}
	exists, err := uc.repo.Exists(ctx, company.NIT())
	if err != nil {
		return nil, fmt.Errorf("check company exists: %w", err)
	}
	if exists {
		return nil, domain.NewError(domain.ErrDuplicate, "company with NIT '%s' already exists", company.NIT())
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	out := dto.CompanyFromEntity(company)
	return &out, nil
}

// Update aplica los campos presentes (nil = conservar). Devuelve domain.ErrNotFound si la empresa no existe.
// Un campo presente pero vacío falla la validación.
func (uc *CompanyUseCase) Update(ctx context.Context, nit string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	ctx, span := tracer.Start(ctx, "company.update", trace.WithAttributes(attribute.String("company.nit", nit)))
	defer span.End()

	current, err := uc.repo.GetByNIT(ctx, nit)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	updated := *current
	steps := []struct {
		value *string
		apply func(entity.Company, string) (entity.Company, error)
	}{
		{in.Name, entity.Company.ChangeName},
		{in.Address, entity.Company.ChangeAddress},
		{in.Phone, entity.Company.ChangePhone},
	}
	for _, s := range steps {
		if s.value == nil {
			continue
		}
		if updated, err = s.apply(updated, *s.value); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	out := dto.CompanyFromEntity(updated)
	return &out, nil
}

// GetByNIT obtiene una empresa. Devuelve (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByNIT(ctx context.Context, nit string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByNIT(ctx, nit)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	out := dto.CompanyFromEntity(*company)
	return &out, nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	page := dto.NewPageRequest(limit, offset)
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CompanyFromEntity(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  page.Response(),
	}, nil
}

// Delete elimina la empresa (y en cascada sus productos e inventario).
func (uc *CompanyUseCase) Delete(ctx context.Context, nit string) error {
	if err := uc.repo.Delete(ctx, nit); err != nil {
		return err
	}
	if uc.stock != nil {
		// Si falla, las entradas expiran por TTL.
		_ = uc.stock.InvalidateCompany(ctx, nit)
	}
	return nil
}
