package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/pkg/config"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

// ReportSender genera y envía el reporte (report.UseCase).
type ReportSender interface {
	SendEmail(ctx context.Context, companyNIT, email string) error
}

// Processor handlers de las tareas de reportes.
type Processor struct {
	reports ReportSender
	log     *logger.Logger
}

// NewProcessor construye el procesador.
func NewProcessor(reports ReportSender, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{reports: reports, log: log.Component("worker")}
}

// Register asocia los tipos de tarea con sus handlers.
func (p *Processor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeInventoryReportEmail, p.ProcessInventoryReportEmail)
}

// ProcessInventoryReportEmail payload inválido, empresa inexistente o email inválido no se reintentan.
func (p *Processor) ProcessInventoryReportEmail(ctx context.Context, t *asynq.Task) error {
	var payload InventoryReportEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	start := time.Now()
	err := p.reports.SendEmail(ctx, payload.CompanyNIT, payload.Email)
	if err != nil {
		if domain.IsValidation(err) || errors.Is(err, domain.ErrNotFound) {
			p.log.Ctx(ctx).Warn().Err(err).Str("company_nit", payload.CompanyNIT).Msg("reporte descartado")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
	p.log.Info().
		Str("company_nit", payload.CompanyNIT).
		Dur("elapsed", time.Since(start)).
		Msg("tarea de reporte completada")
	return nil
}

// NewServer servidor asynq con backoff exponencial y logs de error.
func NewServer(cfg config.AsynqConfig, log *logger.Logger) *asynq.Server {
	l := log.Component("asynq")
	return asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{cfg.Queue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			l.Error().Err(err).Str("type", task.Type()).Msg("tarea fallida")
		}),
		RetryDelayFunc:  ExponentialBackoff,
		ShutdownTimeout: 30 * time.Second,
		Logger:          asynqLogger{l},
	})
}

// ExponentialBackoff 1s, 2s, 4s... con tope de 10 minutos.
func ExponentialBackoff(n int, _ error, _ *asynq.Task) time.Duration {
	const maxDelay = 10 * time.Minute
	if n >= 10 {
		return maxDelay
	}
	delay := time.Second * time.Duration(1<<uint(n))
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

// asynqLogger adapta zerolog a asynq.Logger.
type asynqLogger struct{ l *logger.Logger }

func (a asynqLogger) Debug(args ...interface{}) { a.l.Debug().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Info(args ...interface{})  { a.l.Info().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Warn(args ...interface{})  { a.l.Warn().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Error(args ...interface{}) { a.l.Error().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Fatal(args ...interface{}) { a.l.Fatal().Msg(fmt.Sprint(args...)) }
