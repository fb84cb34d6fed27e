// Package redis contiene el contador de secuencias sobre Redis (INCR atómico).
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/pkg/config"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// keyPrefix separa los contadores del POS de otras claves del mismo Redis.
const keyPrefix = "cafe-pos:seq:"

// SequenceRepo numeración diaria con INCR. Las claves expiran pasado el día para no acumularse.
// A diferencia del contador en la DB, un número consumido por una transacción que luego falla no se devuelve.
type SequenceRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
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

// NewSequenceRepository construye el contador; las claves duran 48h.
func NewSequenceRepository(client *goredis.Client) *SequenceRepo {
	return &SequenceRepo{client: client, ttl: 48 * time.Hour}
}

// Next INCR + EXPIRE en un pipeline MULTI/EXEC.
func (r *SequenceRepo) Next(ctx context.Context, key string) (int64, error) {
	var incr *goredis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		incr = p.Incr(ctx, keyPrefix+key)
		p.Expire(ctx, keyPrefix+key, r.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return incr.Val(), nil
}
