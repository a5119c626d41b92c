package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/prep-readiness/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisSlot stores each slot as a plain string key under a prefix
type RedisSlot struct {
	client *redis.Client
	prefix string
}

// NewRedisSlot creates the client and verifies the connection
func NewRedisSlot(ctx context.Context, cfg config.RedisConfig) (*RedisSlot, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisSlot{client: rdb, prefix: cfg.KeyPrefix}, nil
}

func (r *RedisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis slot: get %s: %w", key, err)
	}
	return value, nil
}

func (r *RedisSlot) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis slot: set %s: %w", key, err)
	}
	return nil
}

func (r *RedisSlot) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis slot: del %s: %w", key, err)
	}
	return nil
}

func (r *RedisSlot) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
