package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-empresas/internal/application/inventory"
	"github.com/jhoicas/inventario-empresas/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

func newCache(t *testing.T, ttl time.Duration) (*cache.StockCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewStockCache(client, ttl, logger.Nop()), mr
}

// set cachea la entrada con la versión actual del par.
func set(t *testing.T, c *cache.StockCache, nit, code string, entry inventory.CachedStock) {
	t.Helper()
	ctx := context.Background()
	v, err := c.Version(ctx, nit, code)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, nit, code, entry, v))
}

func TestStockCache_SetGetInvalidate(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "123456789", "PROD001")
	require.NoError(t, err)
	assert.False(t, hit)

	set(t, c, "123456789", "PROD001", inventory.CachedStock{Quantity: 8, Found: true})
	entry, hit, err := c.Get(ctx, "123456789", "PROD001")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, inventory.CachedStock{Quantity: 8, Found: true}, entry)

	require.NoError(t, c.Invalidate(ctx, "123456789", "PROD001"))
	_, hit, err = c.Get(ctx, "123456789", "PROD001")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStockCache_Expira(t *testing.T) {
	c, mr := newCache(t, 30*time.Second)
	ctx := context.Background()

	set(t, c, "123456789", "PROD001", inventory.CachedStock{Found: false})
	assert.Equal(t, 30*time.Second, mr.TTL(cache.BuildKey("123456789", "PROD001")))

	mr.FastForward(31 * time.Second)
	_, hit, err := c.Get(ctx, "123456789", "PROD001")
	require.NoError(t, err)
	assert.False(t, hit)
}

// Una versión leída antes de un Invalidate ya no permite escribir.
func TestStockCache_SetConVersionVieja(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	stale, err := c.Version(ctx, "123456789", "PROD001")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "123456789", "PROD001"))

	require.NoError(t, c.Set(ctx, "123456789", "PROD001", inventory.CachedStock{Quantity: 5, Found: true}, stale))
	_, hit, err := c.Get(ctx, "123456789", "PROD001")
	require.NoError(t, err)
	assert.False(t, hit, "la escritura con versión vieja se descarta")

	fresh, err := c.Version(ctx, "123456789", "PROD001")
	require.NoError(t, err)
	assert.NotEqual(t, stale, fresh)
	require.NoError(t, c.Set(ctx, "123456789", "PROD001", inventory.CachedStock{Quantity: 8, Found: true}, fresh))
	entry, hit, err := c.Get(ctx, "123456789", "PROD001")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 8, entry.Quantity)
}

func TestStockCache_SetTrasInvalidateCompany(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	stale, err := c.Version(ctx, "111", "A")
	require.NoError(t, err)
	require.NoError(t, c.InvalidateCompany(ctx, "111"))

	require.NoError(t, c.Set(ctx, "111", "A", inventory.CachedStock{Quantity: 1, Found: true}, stale))
	_, hit, err := c.Get(ctx, "111", "A")
	require.NoError(t, err)
	assert.False(t, hit)
}

// Pares cuyas partes contienen ":" no comparten llave.
func TestStockCache_LlavesNoColisionan(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	set(t, c, "12345", "X:P", inventory.CachedStock{Quantity: 7, Found: true})

	_, hit, err := c.Get(ctx, "12345:X", "P")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotEqual(t, cache.BuildKey("12345", "X:P"), cache.BuildKey("12345:X", "P"))

	entry, hit, err := c.Get(ctx, "12345", "X:P")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, entry.Quantity)
}

func TestStockCache_EntradaCorruptaEsMiss(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	require.NoError(t, mr.Set(cache.BuildKey("1", "P"), "no-json"))

	_, hit, err := c.Get(context.Background(), "1", "P")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists(cache.BuildKey("1", "P")))
}

func TestStockCache_InvalidateCompany(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	ctx := context.Background()
	for _, code := range []string{"A", "B", "C"} {
		set(t, c, "111", code, inventory.CachedStock{Quantity: 1, Found: true})
	}
	set(t, c, "222", "A", inventory.CachedStock{Quantity: 1, Found: true})

	require.NoError(t, c.InvalidateCompany(ctx, "111"))
	for _, code := range []string{"A", "B", "C"} {
		assert.False(t, mr.Exists(cache.BuildKey("111", code)))
	}
	assert.True(t, mr.Exists(cache.BuildKey("222", "A")))
}

// Un NIT con comodines de glob sólo borra sus propias entradas.
func TestStockCache_InvalidateCompanyNITConComodines(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	ctx := context.Background()
	set(t, c, "1*", "A", inventory.CachedStock{Quantity: 1, Found: true})
	set(t, c, "12", "A", inventory.CachedStock{Quantity: 2, Found: true})
	set(t, c, "1[2]", "A", inventory.CachedStock{Quantity: 3, Found: true})

	require.NoError(t, c.InvalidateCompany(ctx, "1*"))
	assert.False(t, mr.Exists(cache.BuildKey("1*", "A")))
	assert.True(t, mr.Exists(cache.BuildKey("12", "A")))
	assert.True(t, mr.Exists(cache.BuildKey("1[2]", "A")))
}

func TestStockCache_RedisCaido(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	mr.Close()

	_, _, err := c.Get(context.Background(), "1", "P")
	assert.Error(t, err)
	_, err = c.Version(context.Background(), "1", "P")
	assert.Error(t, err)
}
