package weather

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mdobak/go-xerrors"
)

// Cache stores encoded weather responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache pings the server and falls back to an uncached mode when it is
// unreachable, so a missing Redis never takes the weather endpoint down. The
// cache owns client from here on; on fallback the client is closed at once.
func NewRedisCache(ctx context.Context, client *redis.Client, logger *slog.Logger) Cache {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, weather responses will not be cached",
			slog.String("addr", client.Options().Addr),
			slog.String("error", err.Error()),
		)
		if err := client.Close(); err != nil {
			logger.Warn("closing unused redis client", slog.String("error", err.Error()))
		}
		return NoCache{}
	}

	logger.Info("redis connection established", slog.String("addr", client.Options().Addr))
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, xerrors.New(err)
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return xerrors.New(err)
	}
	return nil
}

// NoCache never stores anything.
type NoCache struct{}

func (NoCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NoCache) Close() error { return nil }
