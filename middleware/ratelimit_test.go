package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adiyatma/idp-dashboard/config"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
)

func newLimitedRouter(cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(cfg))
	r.POST("/hook", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"received": true})
	})
	return r
}

func hitHook(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/hook", nil)
	req.RemoteAddr = ip + ":1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_WithoutRedis(t *testing.T) {
	// Ensure no Redis client is available
	config.SetRedisClientForTesting(nil)
	defer config.SetRedisClientForTesting(nil)

	r := newLimitedRouter(RateLimitConfig{Limit: 5, Window: time.Minute})

	// Without Redis, all requests should be allowed
	for i := 0; i < 10; i++ {
		if w := hitHook(r, "192.168.1.1"); w.Code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(db)
	defer config.SetRedisClientForTesting(nil)

	key := "ratelimit:/hook:192.168.1.1"
	window := time.Minute

	// Three requests under a limit of 2: the third increment pushes the
	// counter past the limit and must be rejected.
	for i := int64(1); i <= 3; i++ {
		mock.ExpectIncr(key).SetVal(i)
		mock.ExpectExpire(key, window).SetVal(true)
	}

	r := newLimitedRouter(RateLimitConfig{Limit: 2, Window: window})

	for i := 0; i < 2; i++ {
		if w := hitHook(r, "192.168.1.1"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := hitHook(r, "192.168.1.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over limit, got %d", w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestRateLimiter_RedisErrorFailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(db)
	defer config.SetRedisClientForTesting(nil)

	mock.ExpectIncr("ratelimit:/hook:192.168.1.1").SetErr(redisDownErr{})

	r := newLimitedRouter(RateLimitConfig{Limit: 2, Window: time.Minute})

	if w := hitHook(r, "192.168.1.1"); w.Code != http.StatusOK {
		t.Fatalf("expected fail-open 200 on redis error, got %d", w.Code)
	}
}

type redisDownErr struct{}

func (redisDownErr) Error() string { return "connection refused" }

func TestRateLimiter_DefaultConfig(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	defer config.SetRedisClientForTesting(nil)

	// Empty config falls back to the webhook defaults.
	r := newLimitedRouter(RateLimitConfig{})

	if w := hitHook(r, "192.168.1.1"); w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestResetRateLimit_NoRedis(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	defer config.SetRedisClientForTesting(nil)

	if err := ResetRateLimit("192.168.1.1", "/hook"); err == nil {
		t.Error("expected error when Redis not available, got nil")
	}
}

func TestResetRateLimit_DeletesKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(db)
	defer config.SetRedisClientForTesting(nil)

	mock.ExpectDel("ratelimit:/hook:192.168.1.1").SetVal(1)

	if err := ResetRateLimit("192.168.1.1", "/hook"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}
