package ports

import (
	"context"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
)

// LLMService define el puerto de salida hacia el proveedor de IA.
// Cualquier adaptador (Hugging Face, mock) debe implementar esta interfaz.
type LLMService interface {
	// InventoryRecommendations genera recomendaciones de reabastecimiento en texto libre.
	// Nunca devuelve error: ante cualquier fallo responde un texto de reemplazo en español.
	InventoryRecommendations(ctx context.Context, companyName string, items []dto.InventoryLine) string
}
