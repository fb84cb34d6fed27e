package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// maxLimiterKeys tope de IPs recordadas antes de vaciar el mapa.
const maxLimiterKeys = 10000

// LoginLimiter limita intentos de login por IP de cliente (token bucket por clave).
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	log      *logger.Logger
}

// NewLoginLimiter perMinute intentos sostenidos por minuto con ráfaga burst. perMinute <= 0 deshabilita el límite.
func NewLoginLimiter(perMinute, burst int, log *logger.Logger) *LoginLimiter {
	r := rate.Inf
	if perMinute > 0 {
		r = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst < 1 {
		burst = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LoginLimiter{limiters: make(map[string]*rate.Limiter), rate: r, burst: burst, log: log}
}

func (l *LoginLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.limiters) >= maxLimiterKeys {
		l.limiters = make(map[string]*rate.Limiter)
	}
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// Allow consume un intento para key.
func (l *LoginLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// Handler middleware Fiber: 429 cuando la IP agotó sus intentos.
func (l *LoginLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if !l.Allow(ip) {
			l.log.Warn().Str("ip", ip).Str("path", c.Path()).Msg("límite de intentos de login excedido")
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many login attempts, try again later",
			})
		}
		return c.Next()
	}
}
