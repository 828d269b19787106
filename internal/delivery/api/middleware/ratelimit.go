package middleware

import (
	"log/slog"
	"sync"
	"time"

	"mirror/config"
	"mirror/internal/delivery/api/response"
	domainerrors "mirror/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a token bucket per client IP.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
	logger   *slog.Logger
}

// NewRateLimitMiddleware creates a per-IP limiter from the rateLimit config section.
func NewRateLimitMiddleware(cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	rps, burst := 1.0, 5
	if cfg.RateLimit != nil {
		rps, burst = cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst
	}

	return &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
		logger:   logger,
	}
}

// Limit rejects requests over the caller's budget with 429.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if !m.allow(ip) {
			m.logger.Warn("Rate limit exceeded", slog.String("remote_ip", ip), slog.String("path", c.Path()))

			return response.Error(c, domainerrors.ErrRateLimited.HTTPCode(), domainerrors.CodeRateLimited, domainerrors.ErrRateLimited.Message(), nil)
		}

		return next(c)
	}
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	v, ok := m.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[ip] = v
	}
	v.lastSeen = now

	// Drop idle visitors opportunistically.
	for key, other := range m.visitors {
		if now.Sub(other.lastSeen) > limiterIdleTTL {
			delete(m.visitors, key)
		}
	}

	return v.limiter.AllowN(now, 1)
}
