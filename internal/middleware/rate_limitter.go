package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
	"sync"
	"time"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	bucket    map[string]*limiterEntry
	rate      rate.Limit
	burstSize int
	mutex     *sync.Mutex
	lastSweep time.Time
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		bucket:    make(map[string]*limiterEntry),
		rate:      reqRate,
		burstSize: burstSize,
		mutex:     &sync.Mutex{},
		lastSweep: time.Now(),
	}
}

func (r *rateLimiter) GetLimiterFrom(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now()
	if now.Sub(r.lastSweep) > limiterIdleTTL {
		for key, entry := range r.bucket {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(r.bucket, key)
			}
		}
		r.lastSweep = now
	}

	entry, exist := r.bucket[ip]
	if !exist {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.bucket[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	limiter := m.rateLimitter.GetLimiterFrom(clientIP)

	if !limiter.Allow() {
		m.log.Warnf("too many requests for IP %s", clientIP)
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many requests",
			"code":  "RATE_LIMITED",
		})
	}

	return ctx.Next()
}
