package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"motorlot/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func authApp(t *testing.T) *fiber.App {
	t.Helper()
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/admin", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": c.Locals("adminUser")})
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthRequired(t *testing.T) {
	app := authApp(t)

	request := func(authHeader string) int {
		req := httptest.NewRequest("GET", "/admin", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "admin",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		assert.Equal(t, fiber.StatusOK, request("Bearer "+token))
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, request(""))
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, request("Token abc"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "some-other-secret-that-is-also-long", jwt.MapClaims{
			"sub": "admin",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		assert.Equal(t, fiber.StatusUnauthorized, request("Bearer "+token))
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "admin",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		assert.Equal(t, fiber.StatusUnauthorized, request("Bearer "+token))
	})

	t.Run("missing subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		assert.Equal(t, fiber.StatusUnauthorized, request("Bearer "+token))
	})
}
