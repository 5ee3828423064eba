package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/application/ports"
)

// aiTimeout tope para la llamada al proveedor de IA, además del timeout del cliente HTTP.
const aiTimeout = 30 * time.Second

// InventoryLister lectura del inventario de una empresa (inventory.UseCase).
type InventoryLister interface {
	ListByCompany(ctx context.Context, companyNIT string) (*dto.CompanyInventoryResponse, error)
}

// AIUseCase orquesta las recomendaciones de reabastecimiento asistidas por IA.
type AIUseCase struct {
	inventory InventoryLister
	llm       ports.LLMService
	now       func() time.Time
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(inventory InventoryLister, llm ports.LLMService) *AIUseCase {
	return &AIUseCase{inventory: inventory, llm: llm, now: time.Now}
}

// Recommendations genera recomendaciones para el inventario actual de la empresa.
// Sólo falla si la empresa no existe o el inventario no se puede leer.
func (uc *AIUseCase) Recommendations(ctx context.Context, companyNIT string) (*dto.RecommendationsResponse, error) {
	ctx, span := tracer.Start(ctx, "ai.recommendations", trace.WithAttributes(attribute.String("company.nit", companyNIT)))
	defer span.End()

	inv, err := uc.inventory.ListByCompany(ctx, companyNIT)
	if err != nil {
		return nil, err
	}
	return &dto.RecommendationsResponse{
		CompanyNIT:      inv.Company.NIT,
		Recommendations: uc.ForInventory(ctx, inv),
		GeneratedAt:     uc.now().UTC(),
	}, nil
}

// ForInventory recomendaciones para un inventario ya leído. Nunca falla.
func (uc *AIUseCase) ForInventory(ctx context.Context, inv *dto.CompanyInventoryResponse) string {
	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()
	return uc.llm.InventoryRecommendations(ctx, inv.Company.Name, inv.Items)
}
