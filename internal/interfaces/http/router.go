package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      AuthService
	CompanyUC   CompanyService
	ProductUC   ProductService
	InventoryUC InventoryService
	ReportUC    ReportService
	AIUC        RecommendationService
	Health      *HealthHandler
	Metrics     http.Handler // nil = sin /metrics
	JWTSecret   string
}

// Router registra las rutas de la API.
// Lectura: cualquier usuario autenticado. Escritura: sólo ADMINISTRATOR.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
	}
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api/v1")
	authn := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdministrator)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authn, authHandler.Refresh)
	authGroup.Get("/me", authn, authHandler.Me)
	authGroup.Post("/users", authn, admin, authHandler.CreateUser)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", authn)

	// Companies
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/companies", companyHandler.List)
	protected.Post("/companies", admin, companyHandler.Create)
	protected.Get("/companies/:nit", companyHandler.Get)
	protected.Patch("/companies/:nit", admin, companyHandler.Update)
	protected.Delete("/companies/:nit", admin, companyHandler.Delete)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/companies/:nit/products", productHandler.ListByCompany)
	protected.Post("/products", admin, productHandler.Create)
	protected.Get("/products/:code", productHandler.Get)
	protected.Delete("/products/:code", admin, productHandler.Delete)

	// Reports (antes de /inventory/:code para que no los capture el parámetro)
	reportHandler := NewReportHandler(deps.ReportUC, deps.AIUC)
	protected.Get("/companies/:nit/inventory/report/pdf", reportHandler.PDF)
	protected.Get("/companies/:nit/inventory/report/xlsx", reportHandler.XLSX)
	protected.Post("/companies/:nit/inventory/report/email", reportHandler.Email)
	protected.Get("/companies/:nit/inventory/recommendations", reportHandler.Recommendations)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	protected.Get("/companies/:nit/inventory", inventoryHandler.ListByCompany)
	protected.Get("/companies/:nit/inventory/:code", inventoryHandler.Check)
	protected.Post("/inventory/add", admin, inventoryHandler.Add)
	protected.Post("/inventory/remove", admin, inventoryHandler.Remove)
}
