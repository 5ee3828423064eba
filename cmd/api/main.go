package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"

	"github.com/jhoicas/inventario-empresas/internal/application/auth"
	"github.com/jhoicas/inventario-empresas/internal/application/inventory"
	"github.com/jhoicas/inventario-empresas/internal/application/report"
	"github.com/jhoicas/inventario-empresas/internal/application/usecase"
	infraai "github.com/jhoicas/inventario-empresas/internal/infrastructure/ai"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/events"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/mail"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/inventario-empresas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/queue"
	infraxlsx "github.com/jhoicas/inventario-empresas/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/inventario-empresas/internal/interfaces/http"
	"github.com/jhoicas/inventario-empresas/pkg/config"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

// version se inyecta con -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.Observability.ServiceName,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", version).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Observability, version)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	metrics := observability.NewMetrics("inventario")

	checks := map[string]httpRouter.HealthCheck{"postgres": pool.Ping}

	// Caché de stock opcional (REDIS_ADDR vacío = deshabilitada).
	var stockCache inventory.StockCache
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo, companyRepo)
	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, caché de stock deshabilitada")
		} else {
			defer client.Close()
			sc := cache.NewStockCache(client, cfg.Redis.StockTTL, log)
			stockCache = sc
			companyUC = companyUC.WithStockCache(sc)
			productUC = productUC.WithStockCache(sc)
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}

	// Eventos inventory.changed opcionales (sin KAFKA_BROKERS = deshabilitados).
	var publisher inventory.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		p, err := events.NewPublisher(cfg.Kafka, log)
		if err != nil {
			log.Warn().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka no disponible, eventos deshabilitados")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	inventoryUC := inventory.NewUseCase(txRunner, companyRepo, productRepo, inventoryRepo, stockCache, publisher, metrics, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear usuario administrador")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("usuario administrador creado")
		}
	}

	llm := infraai.NewHuggingFaceService(cfg.AI, log)
	aiUC := usecase.NewAIUseCase(inventoryUC, llm)

	asynqClient := asynq.NewClient(queue.RedisOpt(cfg.Asynq))
	defer asynqClient.Close()

	reportUC := report.NewUseCase(report.Deps{
		Inventory:   inventoryUC,
		Recommender: aiUC,
		PDF:         infrapdf.NewMarotoPDFGenerator(),
		XLSX:        infraxlsx.NewExporter(),
		Mailer:      mail.NewSMTPMailer(cfg.Mail, log),
		Queue:       queue.NewClient(asynqClient, cfg.Asynq),
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.Tracing())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.Metrics(metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerPath,
			Path:     "docs",
			Title:    "Inventario Empresas API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		ReportUC:    reportUC,
		AIUC:        aiUC,
		Health:      httpRouter.NewHealthHandler(cfg.App.Name, checks),
		Metrics:     metrics.Handler(),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar trazas")
	}

	log.Info().Msg("aplicación detenida")
}
