package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Agotado el burst, las peticiones siguientes de esa IP reciben 429.
func TestRateLimitInvitado_AgotaElBurst(t *testing.T) {
	app := fiber.New()
	app.Post("/alta", RateLimitInvitado(1, 2), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/alta", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "petición %d dentro del burst", i+1)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/alta", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "agotado el burst toca 429")
}

// La limpieza descarta los buckets de IPs inactivas y conserva las recientes.
func TestIPLimiter_LimpiaInactivas(t *testing.T) {
	l := newIPLimiter(1, 1)
	l.limiter("10.0.0.1")
	l.limiter("10.0.0.2")
	require.Len(t, l.entries, 2)

	l.mu.Lock()
	l.entries["10.0.0.1"].lastSeen = time.Now().Add(-l.idleTTL - time.Minute)
	l.mu.Unlock()

	l.limpiar()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.entries, 1)
	_, quedaViva := l.entries["10.0.0.2"]
	assert.True(t, quedaViva, "la IP con actividad reciente debe conservar su bucket")
}

// Una IP que vuelve tras la limpieza estrena bucket con el burst completo.
func TestIPLimiter_ReaparecerEstrenaBucket(t *testing.T) {
	l := newIPLimiter(1, 1)
	require.True(t, l.limiter("10.0.0.1").Allow())
	require.False(t, l.limiter("10.0.0.1").Allow(), "burst de 1 agotado")

	l.mu.Lock()
	l.entries["10.0.0.1"].lastSeen = time.Now().Add(-l.idleTTL - time.Minute)
	l.mu.Unlock()
	l.limpiar()

	assert.True(t, l.limiter("10.0.0.1").Allow(), "tras expirar, el bucket vuelve lleno")
}
