package middleware

import (
	"VoiceBot/internal/entity"
	jwtPkg "VoiceBot/pkg/jwt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestMiddleware(rps float64, burst int) Middleware {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(l, Options{RequestsPerSecond: rps, Burst: burst, TokenSecret: testSecret})
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	m := newTestMiddleware(0.001, 2)
	app := fiber.New()
	app.Get("/", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	m := newTestMiddleware(0, 0)
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen = m.GetRequestID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Len(t, seen, 26)
	assert.Equal(t, seen, resp.Header.Get(RequestIDKey))

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "client-id")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", resp.Header.Get(RequestIDKey))
}

func adminApp(m Middleware) *fiber.App {
	app := fiber.New()
	app.Get("/admin", m.NewTokenMiddleware, m.NewAdminMiddleware, func(c *fiber.Ctx) error {
		operator, err := jwtPkg.GetOperatorLoginData(c)
		if err != nil {
			return err
		}
		return c.SendString(operator.ID)
	})
	return app
}

func bearer(t *testing.T, claims map[string]interface{}) string {
	token, _, err := jwtPkg.Sign(testSecret, claims, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestTokenMiddleware(t *testing.T) {
	app := adminApp(newTestMiddleware(0, 0))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", fiber.StatusUnauthorized},
		{"missing id", bearer(t, map[string]interface{}{"role": entity.RoleAdmin}), fiber.StatusUnauthorized},
		{"not admin", bearer(t, map[string]interface{}{"id": "op-1", "role": "viewer"}), fiber.StatusForbidden},
		{"admin", bearer(t, map[string]interface{}{"id": "op-1", "role": entity.RoleAdmin}), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestTokenMiddleware_WrongSecret(t *testing.T) {
	app := adminApp(newTestMiddleware(0, 0))

	token, _, err := jwtPkg.Sign("other-secret", map[string]interface{}{"id": "op-1", "role": entity.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSanitizeRequestBody(t *testing.T) {
	out := sanitizeRequestBody([]byte(`{"text":"hello","api_key":"abc"}`))
	assert.Contains(t, out, `"api_key":"[SECRET]"`)
	assert.Contains(t, out, `"text":"hello"`)

	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody([]byte("plain")))
}
