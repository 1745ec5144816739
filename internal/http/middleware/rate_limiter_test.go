package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"filevault/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow("k"))
	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"), "burst exhausted")
	assert.True(t, rl.Allow("other"), "keys are independent buckets")
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	do := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if userID != "" {
			c.Set(auth.ContextKeyUserID, userID)
		}
		require.NoError(t, handler(c))
		return rec
	}

	first := do("user-1")
	assert.Equal(t, http.StatusOK, first.Code)

	second := do("user-1")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	// A different subject gets its own bucket even from the same address.
	other := do("user-2")
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimiter_AnonymousKeyedByIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	do := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, handler(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234").Code)
}
