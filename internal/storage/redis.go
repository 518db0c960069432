package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

var (
	cacheOnce sync.Once
	cache     *redis.Client
)

func NewCacheClient(c context.Context, config config.Cache) *redis.Client {
	c, span := otel.Tracer.Start(c, "main NewCacheClient")
	defer span.End()
	cacheOnce.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main NewCacheClient").
			Logger()

		logger = logger.With().Str(log.KeyProcess, "initializing redis client").Logger()
		logger.Info().Msg("initializing redis client")
		cache = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
			Password: config.Password,
			DB:       config.Database,
		})
		logger.Info().Msg("initialized redis client")

		logger = logger.With().Str(log.KeyProcess, "initializing redis otel tracing").Logger()
		logger.Info().Msg("initializing redis otel tracing")
		err := redisotel.InstrumentTracing(cache, redisotel.WithAttributes(semconv.DBSystemRedis))
		if err != nil {
			err = fmt.Errorf("failed initializing otel redis tracing with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("initialized redis otel tracing")

		logger = logger.With().Str(log.KeyProcess, "pinging connection to redis").Logger()
		logger.Info().Msg("pinging connection to redis")
		err = cache.Ping(c).Err()
		if err != nil {
			err = fmt.Errorf("failed pinging redis with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("pinged connection to redis")
	})
	return cache
}

// RedisSlot keeps the cart under a single redis key. Same contract as the
// file slot: malformed content loads as an empty cart.
type RedisSlot struct {
	client *redis.Client
	key    string
}

func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

func (s *RedisSlot) Load(c context.Context) ([]response.CartItem, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisSlot Load").
		Logger()

	raw, err := s.client.Get(c, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		err = fmt.Errorf("failed reading cart slot with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	items := []response.CartItem{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn().
			Err(err).
			Msg("cart slot content is malformed, treating as empty cart")
		return nil, nil
	}
	return items, nil
}

func (s *RedisSlot) Store(c context.Context, items []response.CartItem) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisSlot Store").
		Int(log.KeyCartItems, len(items)).
		Logger()

	if items == nil {
		items = []response.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart slot with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err := s.client.Set(c, s.key, raw, 0).Err(); err != nil {
		err = fmt.Errorf("failed writing cart slot with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Debug().Msg("stored cart slot")
	return nil
}

func (s *RedisSlot) Clear(c context.Context) error {
	if err := s.client.Del(c, s.key).Err(); err != nil {
		return fmt.Errorf("failed clearing cart slot with error=%w", err)
	}
	return nil
}
