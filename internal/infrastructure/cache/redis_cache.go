// Package cache guarda en Redis el resumen del panel y lo invalida tras cada escritura.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/agro-inventario/internal/application/analytics"
	"github.com/jhoicas/agro-inventario/internal/application/dto"
	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/pkg/config"
)

var (
	_ analytics.SummaryCache = (*SummaryCache)(nil)
	_ inventory.Notifier     = (*SummaryCache)(nil)
)

// redisClient subconjunto de *redis.Client que usa la caché.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("conectar a Redis %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// SummaryCache guarda el resumen serializado en JSON con TTL.
type SummaryCache struct {
	rdb    redisClient
	prefix string
	ttl    time.Duration
}

// NewSummaryCache construye la caché; prefix separa las claves de otras aplicaciones.
func NewSummaryCache(rdb redisClient, prefix string, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get devuelve nil, nil si la clave no existe o expiró.
func (c *SummaryCache) Get(ctx context.Context, key string) (*dto.SummaryDTO, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var out dto.SummaryDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decodificar resumen: %w", err)
	}
	return &out, nil
}

// Set guarda summary bajo key.
func (c *SummaryCache) Set(ctx context.Context, key string, summary *dto.SummaryDTO) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("codificar resumen: %w", err)
	}
	if err := c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate borra todos los resúmenes guardados.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, c.prefix+"summary:*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// MovementApplied invalida el resumen: cambió un saldo.
func (c *SummaryCache) MovementApplied(ctx context.Context, _ *entity.Item, _ *entity.Movement) error {
	return c.Invalidate(ctx)
}

// ItemChanged invalida el resumen: cambió el catálogo.
func (c *SummaryCache) ItemChanged(ctx context.Context, _ entity.Module, _ string) error {
	return c.Invalidate(ctx)
}
