package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

type Redis struct {
	redisdb *redis.Client
	prefix  string
	ttl     time.Duration
}

func NewRedis(cfg RedisConfig) *Redis {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return newRedis(redisdb, cfg)
}

func newRedis(redisdb *redis.Client, cfg RedisConfig) *Redis {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "payrollhub:"
	}

	return &Redis{redisdb: redisdb, prefix: prefix, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.redisdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return val, true, nil
}

func (c *Redis) Set(ctx context.Context, key, val string) error {
	return c.redisdb.Set(ctx, c.prefix+key, val, c.ttl).Err()
}

// Ping backs the readiness probe.
func (c *Redis) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.redisdb.Close()
}
