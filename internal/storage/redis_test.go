package storage

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedisSlot(t *testing.T) (*redis.Client, *RedisSlot) {
	t.Helper()
	c := context.Background()

	redisContainer, err := testRedis.Run(
		c,
		"redis:7.4.2-alpine3.21",
		testRedis.WithLogLevel(testRedis.LogLevelVerbose),
	)
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}
	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}
	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	return redisClient, NewRedisSlot(redisClient, "cartProducts")
}

func TestRedisSlotRoundTrip(t *testing.T) {
	c := context.Background()
	_, slot := setupRedisSlot(t)

	require.NoError(t, slot.Store(c, testItems()))

	loaded, err := slot.Load(c)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 2, loaded[0].Quantity)
	assert.Equal(t, "Fjallraven Backpack", loaded[0].Title)
}

func TestRedisSlotAbsentKeyLoadsEmpty(t *testing.T) {
	c := context.Background()
	_, slot := setupRedisSlot(t)

	loaded, err := slot.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisSlotMalformedContentLoadsEmpty(t *testing.T) {
	c := context.Background()
	client, slot := setupRedisSlot(t)

	require.NoError(t, client.Set(c, "cartProducts", "{not json", 0).Err())

	loaded, err := slot.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRedisSlotClear(t *testing.T) {
	c := context.Background()
	_, slot := setupRedisSlot(t)

	require.NoError(t, slot.Store(c, testItems()))
	require.NoError(t, slot.Clear(c))

	loaded, err := slot.Load(c)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
