package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jcolmenar/colavirtual-api/internal/application/dto"
	"golang.org/x/time/rate"
)

// Ventana de inactividad tras la cual se descarta el bucket de una IP, y
// cadencia de la limpieza. Una IP que vuelve tras expirar estrena bucket
// lleno.
const (
	limiterIdleTTL      = 15 * time.Minute
	limiterCleanupEvery = 2 * time.Minute
)

// ipLimiter mantiene un token bucket por IP de origen con expiración por
// inactividad: sin ella, un endpoint sin autenticación acumularía un bucket
// por cada IP vista durante toda la vida del proceso.
type ipLimiter struct {
	mu      sync.Mutex
	entries map[string]*ipEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

type ipEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		entries: make(map[string]*ipEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: limiterIdleTTL,
	}
}

func (l *ipLimiter) limiter(ip string) *rate.Limiter {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.entries[ip]; ok {
		ent.lastSeen = now
		return ent.lim
	}
	ent := &ipEntry{lim: rate.NewLimiter(l.rps, l.burst), lastSeen: now}
	l.entries[ip] = ent
	return ent.lim
}

// limpiar descarta los buckets de IPs sin actividad dentro del TTL.
func (l *ipLimiter) limpiar() {
	corte := time.Now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, ent := range l.entries {
		if ent.lastSeen.Before(corte) {
			delete(l.entries, ip)
		}
	}
}

// janitor limpia periódicamente hasta que se cierre done.
func (l *ipLimiter) janitor(every time.Duration, done <-chan struct{}) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			l.limpiar()
		}
	}
}

// RateLimitInvitado limita por IP las peticiones del endpoint de alta
// anónima. Responde 429 cuando el bucket está agotado. El middleware vive
// tanto como el proceso, así que su janitor no necesita parada.
func RateLimitInvitado(rps float64, burst int) fiber.Handler {
	limiters := newIPLimiter(rps, burst)
	go limiters.janitor(limiterCleanupEvery, nil)
	return func(c *fiber.Ctx) error {
		if !limiters.limiter(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, inténtalo más tarde",
			})
		}
		return c.Next()
	}
}
