package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/inventario-empresas/internal/application/report"
	"github.com/jhoicas/inventario-empresas/pkg/config"
)

// Enqueuer subconjunto de *asynq.Client usado para encolar.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client implementa report.EmailQueue.
type Client struct {
	enqueuer  Enqueuer
	queue     string
	maxRetry  int
	retention time.Duration
}

var _ report.EmailQueue = (*Client)(nil)

// RedisOpt opciones de conexión de asynq a partir de la configuración.
func RedisOpt(cfg config.AsynqConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
}

// NewClient construye el cliente sobre un Enqueuer (normalmente asynq.NewClient(RedisOpt(cfg))).
func NewClient(enqueuer Enqueuer, cfg config.AsynqConfig) *Client {
	return &Client{enqueuer: enqueuer, queue: cfg.Queue, maxRetry: cfg.MaxRetry, retention: 24 * time.Hour}
}

// EnqueueInventoryReportEmail encola el envío del reporte.
func (c *Client) EnqueueInventoryReportEmail(ctx context.Context, companyNIT, email string) (string, string, error) {
	task, err := NewInventoryReportEmailTask(companyNIT, email)
	if err != nil {
		return "", "", err
	}
	info, err := c.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(c.maxRetry),
		asynq.Retention(c.retention),
	)
	if err != nil {
		return "", "", fmt.Errorf("asynq enqueue: %w", err)
	}
	return info.ID, info.Queue, nil
}
