package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetRedisClientAndCtx connects to the redis instance given by REDIS_HOST /
// REDIS_PORT / REDIS_PASS (defaulting to localhost:6379, no auth) and fails
// the test if it does not respond to a ping.
func GetRedisClientAndCtx(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	redisHost := envOr("REDIS_HOST", "localhost")
	redisPort := envOr("REDIS_PORT", "6379")
	t.Logf("using redis at %s:%s", redisHost, redisPort)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(redisHost, redisPort),
		Password: os.Getenv("REDIS_PASS"),
	})
	t.Cleanup(func() {
		require.NoError(t, rdb.Close())
	})

	_, err := rdb.Ping(ctx).Result()
	require.NoError(t, err)

	return ctx, rdb
}
