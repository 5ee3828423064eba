package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/queue"
	"github.com/jhoicas/inventario-empresas/pkg/config"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "task-1", Queue: "reports", Type: task.Type()}, nil
}

type fakeReports struct {
	calls []queue.InventoryReportEmailPayload
	err   error
}

func (f *fakeReports) SendEmail(_ context.Context, companyNIT, email string) error {
	f.calls = append(f.calls, queue.InventoryReportEmailPayload{CompanyNIT: companyNIT, Email: email})
	return f.err
}

func TestClient_EncolaTareaDeReporte(t *testing.T) {
	enq := &fakeEnqueuer{}
	c := queue.NewClient(enq, config.AsynqConfig{Queue: "reports", MaxRetry: 3})

	id, q, err := c.EnqueueInventoryReportEmail(context.Background(), "900123456", "ana@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)
	assert.Equal(t, "reports", q)

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, queue.TypeInventoryReportEmail, enq.tasks[0].Type())
	var payload queue.InventoryReportEmailPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	assert.Equal(t, queue.InventoryReportEmailPayload{CompanyNIT: "900123456", Email: "ana@acme.com"}, payload)
	assert.Len(t, enq.opts[0], 3)
}

func TestClient_ErrorDeRedis(t *testing.T) {
	c := queue.NewClient(&fakeEnqueuer{err: errors.New("redis down")}, config.AsynqConfig{Queue: "reports"})

	_, _, err := c.EnqueueInventoryReportEmail(context.Background(), "900123456", "ana@acme.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}

func TestProcessor_EnviaReporte(t *testing.T) {
	reports := &fakeReports{}
	p := queue.NewProcessor(reports, nil)
	task, err := queue.NewInventoryReportEmailTask("900123456", "ana@acme.com")
	require.NoError(t, err)

	require.NoError(t, p.ProcessInventoryReportEmail(context.Background(), task))
	assert.Equal(t, []queue.InventoryReportEmailPayload{{CompanyNIT: "900123456", Email: "ana@acme.com"}}, reports.calls)
}

func TestProcessor_NoReintentaErroresPermanentes(t *testing.T) {
	p := queue.NewProcessor(&fakeReports{}, nil)
	err := p.ProcessInventoryReportEmail(context.Background(), asynq.NewTask(queue.TypeInventoryReportEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	missing := &fakeReports{err: domain.NewError(domain.ErrNotFound, "company with NIT '1' not found")}
	task, _ := queue.NewInventoryReportEmailTask("1", "ana@acme.com")
	err = queue.NewProcessor(missing, nil).ProcessInventoryReportEmail(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestProcessor_ReintentaFallosTransitorios(t *testing.T) {
	smtp := &fakeReports{err: errors.New("smtp: timeout")}
	task, _ := queue.NewInventoryReportEmailTask("900123456", "ana@acme.com")

	err := queue.NewProcessor(smtp, nil).ProcessInventoryReportEmail(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestExponentialBackoff(t *testing.T) {
	assert.Equal(t, time.Second, queue.ExponentialBackoff(0, nil, nil))
	assert.Equal(t, 8*time.Second, queue.ExponentialBackoff(3, nil, nil))
	assert.Equal(t, 10*time.Minute, queue.ExponentialBackoff(20, nil, nil))
}
