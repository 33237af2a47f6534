package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	first := &authDomain.Moderator{ID: uuid.Must(uuid.NewV7())}
	second := &authDomain.Moderator{ID: uuid.Must(uuid.NewV7())}

	limiter := RateLimitMiddleware(0.01, 2, newTestLogger())

	newRouter := func(moderator *authDomain.Moderator) *gin.Engine {
		router := gin.New()
		router.Use(withModerator(moderator), limiter)
		router.GET("/v1/catalog", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	serve := func(router *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/catalog", nil))
		return w
	}

	t.Run("BurstThenReject", func(t *testing.T) {
		router := newRouter(first)

		assert.Equal(t, http.StatusOK, serve(router).Code)
		assert.Equal(t, http.StatusOK, serve(router).Code)

		w := serve(router)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, "rate_limit_exceeded", decodeBody(w)["error"])
	})

	t.Run("BucketsArePerModerator", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(newRouter(second)).Code)
	})

	t.Run("Anonymous", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(newRouter(nil)).Code)
	})
}

func TestPublicRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PublicRateLimitMiddleware(0.01, 1, newTestLogger()))
	router.POST("/v1/token", func(c *gin.Context) { c.Status(http.StatusCreated) })

	serve := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/token", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, serve("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.1:1234"))
	assert.Equal(t, http.StatusCreated, serve("10.0.0.2:1234"))
}

func TestLimiterStore_SweepsIdleEntries(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := newLimiterStore(1, 1)
	store.now = func() time.Time { return now }

	store.get("a")
	store.get("b")
	assert.Equal(t, 2, store.size())

	now = now.Add(limiterIdleTTL / 2)
	store.get("b")

	// "a" is idle for longer than the TTL, "b" was touched half way through.
	now = now.Add(limiterIdleTTL/2 + time.Minute)
	store.get("c")

	assert.Equal(t, 2, store.size())
	_, ok := store.limiters["a"]
	assert.False(t, ok)
}
