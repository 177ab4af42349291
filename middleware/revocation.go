package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
)

// Revoker remembers logged-out token IDs until the tokens would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Ping(ctx context.Context) error
}

const revokedPrefix = "revoked:" // String: revoked:{jti} -> "1", expires with the token

type RedisRevoker struct {
	Client *redis.Client
}

var _ Revoker = (*RedisRevoker)(nil)

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{Client: client}
}

// InitializeRedisClient creates and tests a Redis client connection
func InitializeRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.Client.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token in Redis: %w", err)
	}
	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.Client.Get(ctx, revokedPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return true, nil
}

func (r *RedisRevoker) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// CacheRevoker is the single-process fallback when no Redis is configured.
type CacheRevoker struct {
	cache *cache.Cache
}

var _ Revoker = (*CacheRevoker)(nil)

func NewCacheRevoker() *CacheRevoker {
	return &CacheRevoker{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (r *CacheRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl > 0 {
		r.cache.Set(tokenID, true, ttl)
	}
	return nil
}

func (r *CacheRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := r.cache.Get(tokenID)
	return found, nil
}

func (r *CacheRevoker) Ping(context.Context) error {
	return nil
}
