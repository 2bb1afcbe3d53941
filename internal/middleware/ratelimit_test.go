package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestInMemoryRateLimiter(t *testing.T) {
	limiter := NewInMemoryRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("4th request should be blocked")
	}
	// Other keys are tracked independently.
	if !limiter.Allow("5.6.7.8") {
		t.Fatal("different key should be allowed")
	}
}

func TestInMemoryRateLimiterWindowExpiry(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, 50*time.Millisecond)

	if !limiter.Allow("k") {
		t.Fatal("first request should pass")
	}
	if limiter.Allow("k") {
		t.Fatal("second request inside window should be blocked")
	}
	time.Sleep(60 * time.Millisecond)
	if !limiter.Allow("k") {
		t.Fatal("request after window expiry should pass")
	}
}

func TestRedisRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := NewRedisRateLimiter(client, 2, time.Minute)

	if !limiter.Allow("ip") {
		t.Fatal("first request should pass")
	}
	if !limiter.Allow("ip") {
		t.Fatal("second request should pass")
	}
	if limiter.Allow("ip") {
		t.Fatal("third request should be blocked")
	}

	mr.FastForward(time.Minute + time.Second)
	if !limiter.Allow("ip") {
		t.Fatal("request after window expiry should pass")
	}
}

func TestRedisRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	limiter := NewRedisRateLimiter(client, 1, time.Minute)
	for i := 0; i < 5; i++ {
		if !limiter.Allow("ip") {
			t.Fatal("limiter must fail open when redis is unreachable")
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(NewInMemoryRateLimiter(1, time.Minute)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d, want 429", w.Code)
	}
}
