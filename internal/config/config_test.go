package config

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 100, cfg.RecognizerCacheSize)
	assert.Equal(t, 200, cfg.GeneratorCacheSize)
	assert.Equal(t, 1000, cfg.SessionMax)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 24*time.Hour, cfg.RedisHistoryTTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DIALOG_CACHE_ENABLED", "false")
	t.Setenv("SESSION_IDLE_TIMEOUT", "90s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test", cfg.Env)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 90*time.Second, cfg.SessionIdleTimeout)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"APP_ENV":                      "moon",
		"DIALOG_RECOGNIZER_CACHE_SIZE": "0",
		"SESSION_MAX":                  "-1",
		"REDIS_ADDRESS":                "not an address",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestServer_RoutesMounted(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithConfig(cfg),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithDialogEngine(),
		WithUtils(),
	)
	require.NoError(t, err)
	require.NoError(t, server.RegisterHandler())
	server.Mount()
	t.Cleanup(func() { _ = server.Shutdown() })

	resp, err := server.App().Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = server.App().Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/chat/intents", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = server.App().Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/admin/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestNewServer_RequiresDependencies(t *testing.T) {
	_, err := NewServer()
	assert.Error(t, err)

	logger := logrus.New()
	_, err = NewServer(WithLogger(logger), WithMiddleware())
	assert.Error(t, err)
}
