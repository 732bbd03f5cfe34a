package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewTokenMiddleware(ctx *fiber.Ctx) error
	NewAdminMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware(ctx *fiber.Ctx) error
	GetRequestID(ctx *fiber.Ctx) string
}

type Options struct {
	RequestsPerSecond float64
	Burst             int
	TokenSecret       string
}

type middleware struct {
	token               *tokenMiddleware
	rateLimitter        *rateLimiter
	loggingMiddleware   *loggingMiddleware
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, opts Options) Middleware {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 50
	}
	if opts.Burst <= 0 {
		opts.Burst = 100
	}

	rateLimit := newRateLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst)
	token := newTokenMiddleware(opts.TokenSecret)
	logging := newLoggingMiddleware(logger)
	requestID := NewRequestIDMiddleware()

	return &middleware{
		token:               token,
		rateLimitter:        rateLimit,
		loggingMiddleware:   logging,
		requestIDMiddleware: requestID,
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
