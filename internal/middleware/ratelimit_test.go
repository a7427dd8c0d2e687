package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCheckRateLimit(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	mr, rdb := setupRedis(t)
	ctx := context.Background()

	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "inquiry", "ip:1.2.3.4", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "request %d should pass", i+1)
		}
		allowed, err := CheckRateLimit(ctx, rdb, "inquiry", "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("counters are per resource and id", func(t *testing.T) {
		allowed, err := CheckRateLimit(ctx, rdb, "inquiry", "ip:5.6.7.8", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = CheckRateLimit(ctx, rdb, "admin_login", "ip:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			CheckRateLimit(ctx, rdb, "expiry", "ip:9.9.9.9", 3, time.Minute)
		}
		mr.FastForward(time.Minute + time.Second)

		allowed, err := CheckRateLimit(ctx, rdb, "expiry", "ip:9.9.9.9", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("nil client errors", func(t *testing.T) {
		_, err := CheckRateLimit(ctx, nil, "inquiry", "ip:1.2.3.4", 3, time.Minute)
		assert.Error(t, err)
	})
}

func TestCheckRateLimitDisabledOutsideProduction(t *testing.T) {
	for _, env := range []string{"test", "development", ""} {
		t.Run("env "+env, func(t *testing.T) {
			t.Setenv("APP_ENV", env)
			for i := 0; i < 10; i++ {
				allowed, err := CheckRateLimit(context.Background(), nil, "inquiry", "ip:1.2.3.4", 1, time.Minute)
				require.NoError(t, err)
				assert.True(t, allowed)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, rdb := setupRedis(t)

	app := fiber.New()
	app.Post("/inquiry", RateLimit(rdb, 2, time.Minute, "inquiry"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/inquiry", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/inquiry", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitFailPolicies(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	newApp := func(policy FailPolicy) *fiber.App {
		app := fiber.New()
		app.Get("/", RateLimitWithPolicy(nil, 1, time.Minute, policy), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("fail open lets the request through", func(t *testing.T) {
		resp, err := newApp(FailOpen).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("fail closed returns 503", func(t *testing.T) {
		resp, err := newApp(FailClosed).Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}
