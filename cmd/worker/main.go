package main

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/inventario-empresas/internal/application/inventory"
	"github.com/jhoicas/inventario-empresas/internal/application/report"
	"github.com/jhoicas/inventario-empresas/internal/application/usecase"
	infraai "github.com/jhoicas/inventario-empresas/internal/infrastructure/ai"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/mail"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/inventario-empresas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/queue"
	"github.com/jhoicas/inventario-empresas/pkg/config"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

var version = "dev"

// Worker de tareas en segundo plano: genera el reporte PDF y lo envía por correo.
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
		Str("queue", cfg.Asynq.Queue).
		Int("concurrency", cfg.Asynq.Concurrency).
		Msg("iniciando worker")

	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Observability, version)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)

	// El worker sólo lee inventario: sin caché, eventos ni métricas.
	inventoryUC := inventory.NewUseCase(postgres.NewTxRunner(pool), companyRepo, productRepo, inventoryRepo, nil, nil, nil, log)
	aiUC := usecase.NewAIUseCase(inventoryUC, infraai.NewHuggingFaceService(cfg.AI, log))

	reportUC := report.NewUseCase(report.Deps{
		Inventory:   inventoryUC,
		Recommender: aiUC,
		PDF:         infrapdf.NewMarotoPDFGenerator(),
		Mailer:      mail.NewSMTPMailer(cfg.Mail, log),
	}, log)

	mux := asynq.NewServeMux()
	queue.NewProcessor(reportUC, log).Register(mux)

	// Run bloquea hasta SIGINT/SIGTERM y espera las tareas en curso.
	srv := queue.NewServer(cfg.Asynq, log)
	if err := srv.Run(mux); err != nil {
		log.Fatal().Err(err).Msg("servidor asynq")
	}
	log.Info().Msg("worker detenido")
}
