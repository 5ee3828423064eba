package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
	"github.com/jhoicas/inventario-empresas/internal/domain/service"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

var tracer = otel.Tracer("inventory-usecase")

// UseCase casos de uso de inventario: agregar, retirar, consultar y listar.
// Add/Remove corren dentro de una transacción; caché, eventos y métricas son opcionales (nil = deshabilitado)
// y sus fallos sólo se registran en el log.
type UseCase struct {
	txRunner  TxRunner
	companies repository.CompanyStore
	products  repository.ProductStore
	inventory repository.InventoryStore
	cache     StockCache
	events    EventPublisher
	metrics   Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	companies repository.CompanyStore,
	products repository.ProductStore,
	inventory repository.InventoryStore,
	cache StockCache,
	events EventPublisher,
	metrics Metrics,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:  txRunner,
		companies: companies,
		products:  products,
		inventory: inventory,
		cache:     cache,
		events:    events,
		metrics:   metrics,
		log:       log.Component("inventory"),
		now:       time.Now,
	}
}

// Add agrega stock al par (crea el registro si no existe).
func (uc *UseCase) Add(ctx context.Context, in dto.InventoryChangeRequest) (*dto.InventoryItemResponse, error) {
	return uc.change(ctx, OperationAdd, in)
}

// Remove retira stock del par.
func (uc *UseCase) Remove(ctx context.Context, in dto.InventoryChangeRequest) (*dto.InventoryItemResponse, error) {
	return uc.change(ctx, OperationRemove, in)
}

func (uc *UseCase) change(ctx context.Context, op string, in dto.InventoryChangeRequest) (*dto.InventoryItemResponse, error) {
	ctx, span := tracer.Start(ctx, "inventory."+op, trace.WithAttributes(
		attribute.String("company.nit", in.CompanyNIT),
		attribute.String("product.code", in.ProductCode),
		attribute.Int("inventory.delta", in.Quantity),
	))
	defer span.End()

	var item entity.InventoryItem
	err := uc.txRunner.RunInventory(ctx, func(
		companies repository.CompanyRepository,
		products repository.ProductRepository,
		inventory repository.InventoryRepository,
	) error {
		svc := service.NewInventoryManagementService(companies, products, inventory)
		var err error
		if op == OperationAdd {
			item, err = svc.AddToInventory(ctx, in.CompanyNIT, in.ProductCode, in.Quantity)
		} else {
			item, err = svc.RemoveFromInventory(ctx, in.CompanyNIT, in.ProductCode, in.Quantity)
		}
		return err
	})
	if err != nil {
		uc.observe(op, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	uc.observe(op, nil)
	span.SetAttributes(attribute.Int("inventory.quantity", item.Quantity()))

	// Tras el commit: invalidar caché y publicar el evento. Ninguno de los dos revierte la operación.
	uc.invalidate(ctx, item.CompanyNIT(), item.ProductCode())
	uc.publish(ctx, ChangedEvent{
		EventID:     uuid.NewString(),
		Operation:   op,
		CompanyNIT:  item.CompanyNIT(),
		ProductCode: item.ProductCode(),
		Delta:       in.Quantity,
		Quantity:    item.Quantity(),
		OccurredAt:  uc.now().UTC(),
	})

	uc.log.Info().
		Str("operation", op).
		Str("company_nit", item.CompanyNIT()).
		Str("product_code", item.ProductCode()).
		Int("delta", in.Quantity).
		Int("quantity", item.Quantity()).
		Msg("inventario actualizado")

	out := dto.InventoryItemFromEntity(item)
	return &out, nil
}

// Check consulta la cantidad del par sin validar empresa ni producto (cache-aside).
func (uc *UseCase) Check(ctx context.Context, companyNIT, productCode string) (*dto.InventoryCheckResponse, error) {
	ctx, span := tracer.Start(ctx, "inventory.check")
	defer span.End()

	out := &dto.InventoryCheckResponse{CompanyNIT: companyNIT, ProductCode: productCode}
	// La versión se lee antes que la BD: un Invalidate intermedio descarta el Set.
	version, cacheable := "", false
	if uc.cache != nil {
		entry, hit, err := uc.cache.Get(ctx, companyNIT, productCode)
		switch {
		case err != nil:
			uc.log.Ctx(ctx).Warn().Err(err).Str("company_nit", companyNIT).Str("product_code", productCode).Msg("caché de stock no disponible")
		case hit:
			span.SetAttributes(attribute.Bool("cache.hit", true))
			out.Quantity, out.Found = entry.Quantity, entry.Found
			return out, nil
		default:
			version, err = uc.cache.Version(ctx, companyNIT, productCode)
			if err != nil {
				uc.log.Ctx(ctx).Warn().Err(err).Str("company_nit", companyNIT).Msg("no se pudo leer la versión de caché")
			} else {
				cacheable = true
			}
		}
	}

	svc := service.NewInventoryManagementService(uc.companies, uc.products, uc.inventory)
	qty, found, err := svc.CheckInventory(ctx, companyNIT, productCode)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	out.Quantity, out.Found = qty, found

	if cacheable {
		if err := uc.cache.Set(ctx, companyNIT, productCode, CachedStock{Quantity: qty, Found: found}, version); err != nil {
			uc.log.Ctx(ctx).Warn().Err(err).Str("company_nit", companyNIT).Msg("no se pudo cachear el stock")
		}
	}
	return out, nil
}

// ListByCompany inventario completo de una empresa con nombre y precios de cada producto.
func (uc *UseCase) ListByCompany(ctx context.Context, companyNIT string) (*dto.CompanyInventoryResponse, error) {
	ctx, span := tracer.Start(ctx, "inventory.list_by_company")
	defer span.End()

	company, err := uc.companies.GetByNIT(ctx, companyNIT)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.inventory.ListByCompany(ctx, companyNIT)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	products, err := uc.products.ListByCompany(ctx, companyNIT, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	byCode := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byCode[p.Code()] = p
	}

	out := &dto.CompanyInventoryResponse{
		Company: dto.CompanyFromEntity(*company),
		Items:   make([]dto.InventoryLine, 0, len(items)),
	}
	for _, it := range items {
		line := dto.InventoryLine{
			ProductCode: it.ProductCode(),
			Quantity:    it.Quantity(),
			UpdatedAt:   it.UpdatedAt(),
		}
		if p, ok := byCode[it.ProductCode()]; ok {
			line.ProductName = p.Name()
			line.Prices = dto.PricesFromEntity(p.Prices())
		}
		out.Items = append(out.Items, line)
		out.Total += it.Quantity()
	}
	sort.Slice(out.Items, func(i, j int) bool { return out.Items[i].ProductCode < out.Items[j].ProductCode })
	return out, nil
}

func (uc *UseCase) invalidate(ctx context.Context, companyNIT, productCode string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, companyNIT, productCode); err != nil {
		uc.log.Ctx(ctx).Warn().Err(err).Str("company_nit", companyNIT).Str("product_code", productCode).Msg("no se pudo invalidar la caché de stock")
	}
}

func (uc *UseCase) publish(ctx context.Context, event ChangedEvent) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishInventoryChanged(ctx, event); err != nil {
		uc.log.Ctx(ctx).Warn().Err(err).Str("event_id", event.EventID).Msg("no se pudo publicar inventory.changed")
	}
}

func (uc *UseCase) observe(op string, err error) {
	if uc.metrics == nil {
		return
	}
	outcome := "ok"
	switch {
	case err == nil:
	case domain.IsValidation(err):
		outcome = "rejected"
	default:
		outcome = "error"
	}
	uc.metrics.ObserveInventoryOperation(op, outcome)
}
