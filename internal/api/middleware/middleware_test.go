package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/programhub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestTimeout(time.Second))

	var hasDeadline bool
	r.GET("/x", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, hasDeadline)
}

func TestCORSMiddlewareAllowsPrefixes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "middleware-secret"
	Init()

	r := gin.New()
	r.Use(JWTAuthMiddleware())
	r.GET("/me", Admin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	tok, err := GenerateToken(5, "ops", true, time.Hour)
	require.NoError(t, err)

	send := func(setup func(*http.Request)) int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		setup(req)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }))
	assert.Equal(t, http.StatusOK, send(func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: tok}) }))
	assert.Equal(t, http.StatusUnauthorized, send(func(r *http.Request) { r.Header.Set("Authorization", "Token "+tok) }))
	// query tokens are only honoured on websocket upgrades
	assert.Equal(t, http.StatusUnauthorized, send(func(r *http.Request) { r.URL.RawQuery = "token=" + tok }))

	userTok, err := GenerateToken(6, "user", false, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, send(func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+userTok) }))
}

func TestRateLimiterEvictIdle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(1, 1)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter.SetClock(func() time.Time { return now })

	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	now = now.Add(40 * time.Minute)
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
	require.Equal(t, 2, limiter.Len())

	assert.Equal(t, 1, limiter.EvictIdle(30*time.Minute))
	assert.Equal(t, 1, limiter.Len())
	assert.Equal(t, 0, limiter.EvictIdle(30*time.Minute))
}
