package dto

import "time"

// RecommendationsResponse recomendaciones de IA para el inventario de una empresa.
type RecommendationsResponse struct {
	CompanyNIT      string    `json:"company_nit"`
	Recommendations string    `json:"recommendations"`
	GeneratedAt     time.Time `json:"generated_at"`
}
