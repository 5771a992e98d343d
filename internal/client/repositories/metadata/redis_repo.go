package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the keys written by RedisRepository.
const DefaultRedisPrefix = "authsession:"

// RedisRepository keeps pairs as plain Redis strings without expiry.
type RedisRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, true, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

// InTx queues the writes made by fn and sends them as one MULTI/EXEC
// block. Nothing is sent when fn fails. Reads inside fn see the state
// before the transaction.
func (r *RedisRepository) InTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return fn(ctx, &redisTx{parent: r, pipe: pipe})
	})
	if err != nil {
		return fmt.Errorf("metadata transaction: %w", err)
	}
	return nil
}

type redisTx struct {
	parent *RedisRepository
	pipe   redis.Pipeliner
}

func (t *redisTx) Get(ctx context.Context, key string) (string, bool, error) {
	return t.parent.Get(ctx, key)
}

func (t *redisTx) Set(ctx context.Context, key string, value string) error {
	t.pipe.Set(ctx, t.parent.prefix+key, value, 0)
	return nil
}

func (t *redisTx) Delete(ctx context.Context, key string) error {
	t.pipe.Del(ctx, t.parent.prefix+key)
	return nil
}
