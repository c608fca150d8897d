package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
)

var _ repository.KVStore = (*RedisStore)(nil)

// RedisStore guarda cada namespace como un hash "console:<namespace>". Cada escritura renueva
// el TTL del hash para que las sesiones abandonadas se limpien solas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOptions parámetros de conexión.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // 0 = sin expiración
}

// NewRedisStore crea el cliente y verifica la conexión con PING.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: rdb, ttl: opts.TTL}, nil
}

// Close cierra el cliente.
func (s *RedisStore) Close() error { return s.client.Close() }

func hashKey(namespace string) string {
	return fmt.Sprintf("console:%s", namespace)
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) (string, error) {
	v, err := s.client.HGet(ctx, hashKey(namespace), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis: hget %s: %v: %w", key, err, domain.ErrStorage)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, namespace, key, value string) error {
	hk := hashKey(namespace)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, hk, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, hk, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: hset %s: %v: %w", key, err, domain.ErrStorage)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, hashKey(namespace), keys...).Err(); err != nil {
		return fmt.Errorf("redis: hdel: %v: %w", err, domain.ErrStorage)
	}
	return nil
}
