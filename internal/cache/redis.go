package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usof-platform/usof-backend/internal/config"
)

const blacklistKeyPrefix = "usof:blacklist:"

// RedisBlacklist keeps revoked tokens in a shared Redis store so that
// every instance behind a load balancer sees the same revocation set.
// Entries expire together with the tokens they invalidate.
type RedisBlacklist struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBlacklist(cfg config.RedisConfig, ttl time.Duration) (*RedisBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisBlacklist{
		client: client,
		ttl:    ttl,
	}, nil
}

func (b *RedisBlacklist) Add(token string) error {
	return b.client.Set(context.Background(), blacklistKeyPrefix+token, "1", b.ttl).Err()
}

func (b *RedisBlacklist) Contains(token string) (bool, error) {
	n, err := b.client.Exists(context.Background(), blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *RedisBlacklist) Close() error {
	return b.client.Close()
}
