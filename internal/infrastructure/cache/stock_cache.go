package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-empresas/internal/application/inventory"
	"github.com/jhoicas/inventario-empresas/pkg/config"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

// Llaves: stock:<nit>:<code> guarda la entrada; stockver:<nit> y stockver:<nit>:<code> son
// contadores que Invalidate/InvalidateCompany incrementan. Cada parte va codificada.
const (
	keyPrefix     = "stock"
	versionPrefix = "stockver"
)

// setIfVersion escribe la entrada sólo si la versión (empresa.par) no cambió desde Version.
// KEYS: entrada, versión empresa, versión par. ARGV: versión esperada, valor, ttl en ms (0 = sin expiración).
var setIfVersion = redis.NewScript(`
local current = (redis.call('GET', KEYS[2]) or '0') .. '.' .. (redis.call('GET', KEYS[3]) or '0')
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

var _ inventory.StockCache = (*StockCache)(nil)

// StockCache caché Redis de la cantidad por par empresa/producto.
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewStockCache construye la caché. ttl <= 0 = sin expiración.
func NewStockCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *StockCache {
	if log == nil {
		log = logger.Nop()
	}
	return &StockCache{client: client, ttl: ttl, log: log.Component("stock-cache")}
}

// BuildKey llave de la entrada del par.
func BuildKey(parts ...string) string {
	return joinKey(keyPrefix, parts)
}

func versionKey(parts ...string) string {
	return joinKey(versionPrefix, parts)
}

// joinKey codifica cada parte con QueryEscape: el resultado no contiene ":" ni comodines de glob
// (* ? [ ] \), así que dos pares distintos nunca comparten llave y el NIT es seguro en SCAN MATCH.
func joinKey(prefix string, parts []string) string {
	encoded := make([]string, 0, len(parts)+1)
	encoded = append(encoded, prefix)
	for _, p := range parts {
		encoded = append(encoded, url.QueryEscape(p))
	}
	return strings.Join(encoded, ":")
}

// Get devuelve hit=false en un miss; sólo los fallos de Redis son error.
func (c *StockCache) Get(ctx context.Context, companyNIT, productCode string) (inventory.CachedStock, bool, error) {
	key := BuildKey(companyNIT, productCode)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return inventory.CachedStock{}, false, nil
		}
		return inventory.CachedStock{}, false, fmt.Errorf("redis get: %w", err)
	}
	var entry inventory.CachedStock
	if err := json.Unmarshal(data, &entry); err != nil {
		// Entrada corrupta: se descarta y cuenta como miss.
		c.log.Warn().Err(err).Str("key", key).Msg("entrada de caché inválida")
		_ = c.client.Del(ctx, key).Err()
		return inventory.CachedStock{}, false, nil
	}
	c.log.Debug().Str("key", key).Msg("cache hit")
	return entry, true, nil
}

// Version devuelve "<versión empresa>.<versión par>"; un contador ausente cuenta como 0.
func (c *StockCache) Version(ctx context.Context, companyNIT, productCode string) (string, error) {
	vals, err := c.client.MGet(ctx, versionKey(companyNIT), versionKey(companyNIT, productCode)).Result()
	if err != nil {
		return "", fmt.Errorf("redis mget: %w", err)
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = "0"
		if s, ok := v.(string); ok {
			parts[i] = s
		}
	}
	return strings.Join(parts, "."), nil
}

// Set guarda la entrada con el TTL configurado si la versión del par sigue siendo version.
func (c *StockCache) Set(ctx context.Context, companyNIT, productCode string, entry inventory.CachedStock, version string) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal stock: %w", err)
	}
	key := BuildKey(companyNIT, productCode)
	written, err := setIfVersion.Run(ctx, c.client,
		[]string{key, versionKey(companyNIT), versionKey(companyNIT, productCode)},
		version, data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	if written == 0 {
		c.log.Debug().Str("key", key).Str("version", version).Msg("versión cambió, no se cachea")
	}
	return nil
}

// Invalidate sube la versión del par y borra su entrada en una sola transacción.
func (c *StockCache) Invalidate(ctx context.Context, companyNIT, productCode string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(companyNIT, productCode))
		pipe.Del(ctx, BuildKey(companyNIT, productCode))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

// InvalidateCompany sube la versión de la empresa y borra todas sus entradas (SCAN + DEL).
func (c *StockCache) InvalidateCompany(ctx context.Context, companyNIT string) error {
	if err := c.client.Incr(ctx, versionKey(companyNIT)).Err(); err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	iter := c.client.Scan(ctx, 0, BuildKey(companyNIT)+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
