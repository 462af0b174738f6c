package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/costing"
)

var _ appcosting.COGSCache = (*RedisCOGSCache)(nil)

// RedisCOGSCache caché de resultados COGS en Redis (JSON con TTL).
// La inmutabilidad del ledger antes de un asOf fijo hace el caché seguro;
// el TTL acota el caso de lotes de corrección retro-fechados.
// Fallos de Redis degradan a cache-miss: nunca tumban la consulta.
type RedisCOGSCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCOGSCache construye el caché sobre un cliente ya conectado.
func NewRedisCOGSCache(rdb *redis.Client, ttl time.Duration) *RedisCOGSCache {
	return &RedisCOGSCache{rdb: rdb, ttl: ttl}
}

// Get devuelve el resultado cacheado, o (nil, false) en miss o error.
func (c *RedisCOGSCache) Get(ctx context.Context, key string) (*costing.Result, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("caché COGS: error en GET, se consulta el ledger")
		}
		return nil, false
	}
	var res costing.Result
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return nil, false
	}
	return &res, true
}

// Set guarda el resultado; errores solo se loguean.
func (c *RedisCOGSCache) Set(ctx context.Context, key string, res costing.Result) {
	payload, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("caché COGS: error en SET")
	}
}
