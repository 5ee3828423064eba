package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

// recordingQuerier guarda el SQL recibido y responde QueryRow con row.
type recordingQuerier struct {
	execs   []string
	queries []string
	row     stubRow
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no soportado")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.queries = append(q.queries, sql)
	return q.row
}

func (q *recordingQuerier) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("no soportado")
}

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = r.values[i].(int)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestInventoryRepo_FindSinLockFueraDeTransaccion(t *testing.T) {
	ts := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	q := &recordingQuerier{row: stubRow{values: []any{4, ts}}}

	item, err := NewInventoryRepository(q).Find(context.Background(), "123456789", "PROD001")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 4, item.Quantity())
	assert.Equal(t, ts, item.UpdatedAt())

	assert.Empty(t, q.execs, "sin advisory lock")
	require.Len(t, q.queries, 1)
	assert.NotContains(t, q.queries[0], "FOR UPDATE")
}

func TestInventoryRepo_FindBloqueaDentroDeTransaccion(t *testing.T) {
	q := &recordingQuerier{row: stubRow{err: pgx.ErrNoRows}}

	item, err := newLockingInventoryRepository(q).Find(context.Background(), "123456789", "PROD001")
	require.NoError(t, err)
	assert.Nil(t, item)

	require.Len(t, q.execs, 1)
	assert.Contains(t, q.execs[0], "pg_advisory_xact_lock")
	require.Len(t, q.queries, 1)
	assert.Contains(t, q.queries[0], "FOR UPDATE")
}

func TestInventoryRepo_SaveDevuelveUpdatedAt(t *testing.T) {
	ts := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	q := &recordingQuerier{row: stubRow{values: []any{ts}}}
	item, err := entity.NewInventoryItem("123456789", "PROD001", 3)
	require.NoError(t, err)

	got, err := NewInventoryRepository(q).Save(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, ts, got)
	require.Len(t, q.queries, 1)
	assert.Contains(t, q.queries[0], "RETURNING updated_at")
}
