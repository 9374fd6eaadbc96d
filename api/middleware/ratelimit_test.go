package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/orgname/config"
)

func limitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit_BurstThenRejected(t *testing.T) {
	r := limitedRouter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 3})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	for i := 0; i < 3; i++ {
		if codes[i] != http.StatusOK {
			t.Errorf("request %d within burst got %d", i, codes[i])
		}
	}
	for i := 3; i < 5; i++ {
		if codes[i] != http.StatusTooManyRequests {
			t.Errorf("request %d over burst got %d, want 429", i, codes[i])
		}
	}
}

func TestRateLimit_IdentitiesIsolated(t *testing.T) {
	r := limitedRouter(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})

	do := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("10.0.0.1:1"); code != http.StatusOK {
		t.Errorf("first identity first request got %d", code)
	}
	if code := do("10.0.0.1:1"); code != http.StatusTooManyRequests {
		t.Errorf("first identity second request got %d, want 429", code)
	}
	if code := do("10.0.0.2:1"); code != http.StatusOK {
		t.Errorf("second identity must have its own bucket, got %d", code)
	}
}
