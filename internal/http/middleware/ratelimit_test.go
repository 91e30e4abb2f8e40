package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(100, 5, KeyByIP())
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: status=%d", i, w.Code)
		}
	}
}

func TestRateLimiter_RejectsWithModelResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// rps=0 with burst=1: one token, never replenished.
	rl := NewRateLimiter(0, 1, KeyByIP())
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("first: status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second: status=%d", w.Code)
	}
	// The rejection uses the error model's default wording.
	if w.Body.String() != "Too Many Requests" {
		t.Fatalf("body=%q", w.Body.String())
	}
	if w.Header().Get("Retry-After") != "1" {
		t.Fatalf("Retry-After=%q", w.Header().Get("Retry-After"))
	}
}

func TestRateLimiter_BurstCoercedToOne(t *testing.T) {
	rl := NewRateLimiter(1, 0, KeyByIP())
	if rl.burst != 1 {
		t.Fatalf("burst=%d", rl.burst)
	}
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1, KeyByIP())
	rl.ttl = time.Millisecond

	rl.getVisitor("ip:10.0.0.1")
	time.Sleep(5 * time.Millisecond)

	// Force the opportunistic GC pass on the next lookup.
	rl.mu.Lock()
	rl.cleanupN = 4999
	rl.mu.Unlock()
	rl.getVisitor("ip:10.0.0.2")

	rl.mu.Lock()
	_, stale := rl.visitors["ip:10.0.0.1"]
	rl.mu.Unlock()
	if stale {
		t.Fatal("idle visitor not evicted")
	}
}

func TestRateLimiter_SeparateBucketsPerKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(0, 1, func(c *gin.Context) string {
		return "hdr:" + c.GetHeader("X-Tenant")
	})
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(tenant string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant", tenant)
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("a"); code != http.StatusNoContent {
		t.Fatalf("a first: %d", code)
	}
	if code := do("b"); code != http.StatusNoContent {
		t.Fatalf("b first: %d", code)
	}
	if code := do("a"); code != http.StatusTooManyRequests {
		t.Fatalf("a second: %d", code)
	}
}
