package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestNewRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(5, 0, nil)
	if rl.burst != 1 || rl.keyFn == nil {
		t.Fatalf("defaults not applied: burst=%d keyFn=%v", rl.burst, rl.keyFn != nil)
	}
	a := rl.getVisitor("k")
	if b := rl.getVisitor("k"); a != b {
		t.Fatalf("visitor not reused")
	}
}

func TestRateLimiter_SweepEvictsIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil)
	rl.sweepAt = 2
	rl.getVisitor("old")
	rl.visitors["old"].lastSeen = time.Now().Add(-time.Hour)

	rl.getVisitor("new") // second lookup triggers a sweep
	if _, ok := rl.visitors["old"]; ok {
		t.Fatalf("idle visitor not evicted")
	}
	if _, ok := rl.visitors["new"]; !ok {
		t.Fatalf("fresh visitor missing")
	}
}

func TestRateLimiter_Handler_PerIdentityAndBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0.001, 1, KeyByIdentity())

	r := gin.New()
	r.Use(BearerIdentity())
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-Replay") == "1" {
			c.Set(ctxKeyRateBypass, true)
		}
		c.Next()
	})
	r.Use(rl.Handler())
	r.GET("/progress", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(token, replay string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/progress", nil)
		req.RemoteAddr = "198.51.100.5:1000"
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if replay != "" {
			req.Header.Set("X-Test-Replay", replay)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do("", ""); w.Code != http.StatusOK {
		t.Fatalf("first anonymous request = %d", w.Code)
	}
	w := do("", "")
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
		t.Fatalf("second anonymous request = %d (Retry-After %q)", w.Code, w.Header().Get("Retry-After"))
	}
	if !strings.Contains(w.Body.String(), `"code":"too_many_requests"`) {
		t.Fatalf("429 body = %s", w.Body.String())
	}
	// Same IP, but a token subject gets its own bucket.
	if w := do(signedToken(t, "u1"), ""); w.Code != http.StatusOK {
		t.Fatalf("user bucket = %d", w.Code)
	}
	if w := do("", "1"); w.Code != http.StatusOK {
		t.Fatalf("replay should bypass limiting, got %d", w.Code)
	}
}

func TestRateLimiter_ZeroRateDisables(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0, 1, nil)
	if rl.Enabled() {
		t.Fatalf("rps 0 should disable the limiter")
	}
	r := gin.New()
	r.Use(rl.Handler())
	r.POST("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, w.Code)
		}
	}
	if len(rl.visitors) != 0 {
		t.Fatalf("disabled limiter tracked %d visitors", len(rl.visitors))
	}
}
