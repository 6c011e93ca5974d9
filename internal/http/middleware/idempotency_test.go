package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type lookupCall struct{ identity, scope, key string }

func newIdemRouter(lookup IdempotencyLookup) (*gin.Engine, *struct{ replay, bypass bool }) {
	gin.SetMode(gin.TestMode)
	seen := &struct{ replay, bypass bool }{}
	r := gin.New()
	r.Use(BearerIdentity(), IdempotencyValidator(IdempotencyOptions{MaxLen: 16}, lookup))
	h := func(c *gin.Context) {
		seen.replay, seen.bypass = IsReplay(c), IsRateBypass(c)
		c.Status(http.StatusOK)
	}
	r.POST("/moods", h)
	r.GET("/moods", h)
	return r, seen
}

func TestIdempotencyValidator_NoHeaderOrNotPost_Noop(t *testing.T) {
	calls := 0
	r, _ := newIdemRouter(func(context.Context, string, string, string) (bool, error) { calls++; return true, nil })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/moods", nil))

	req := httptest.NewRequest(http.MethodGet, "/moods", nil)
	req.Header.Set(HeaderIdempotencyKey, "k1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	if calls != 0 {
		t.Fatalf("lookup called %d times", calls)
	}
}

func TestIdempotencyValidator_InvalidKey(t *testing.T) {
	r, _ := newIdemRouter(nil)
	for _, key := range []string{strings.Repeat("a", 17), "has space", "semi;colon"} {
		req := httptest.NewRequest(http.MethodPost, "/moods", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("key %q: status %d", key, w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "bad_idempotency_key" {
			t.Fatalf("key %q: body %v", key, body)
		}
	}
}

func TestIdempotencyValidator_LookupScopedByRouteAndIdentity(t *testing.T) {
	var got lookupCall
	hit := false
	r, seen := newIdemRouter(func(_ context.Context, identity, scope, key string) (bool, error) {
		got = lookupCall{identity, scope, key}
		return hit, nil
	})

	send := func() {
		req := httptest.NewRequest(http.MethodPost, "/moods", nil)
		req.Header.Set(HeaderIdempotencyKey, "key-1")
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	send()
	if got != (lookupCall{"user:u1", "/moods", "key-1"}) {
		t.Fatalf("lookup args = %+v", got)
	}
	if seen.replay || seen.bypass {
		t.Fatalf("miss flagged as replay")
	}

	hit = true
	send()
	if !seen.replay || !seen.bypass {
		t.Fatalf("hit not flagged: %+v", seen)
	}
}

func TestIdempotencyValidator_LookupErrorIsMiss(t *testing.T) {
	r, seen := newIdemRouter(func(context.Context, string, string, string) (bool, error) {
		return true, context.DeadlineExceeded
	})
	req := httptest.NewRequest(http.MethodPost, "/moods", nil)
	req.Header.Set(HeaderIdempotencyKey, "k")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if seen.replay {
		t.Fatalf("lookup error must not produce a replay")
	}
}

func TestGetIdempotencyKey_IsReplay_Helpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if k, ok := GetIdempotencyKey(c); k != "" || ok {
		t.Fatalf("expected no key")
	}
	c.Set(ctxKeyIdemKey, 123)
	if _, ok := GetIdempotencyKey(c); ok {
		t.Fatalf("non-string key must be absent")
	}
	c.Set(ctxKeyIdemKey, "abc")
	if k, ok := GetIdempotencyKey(c); k != "abc" || !ok {
		t.Fatalf("got %q %v", k, ok)
	}
	c.Set(ctxKeyIdemReplay, "yes")
	if IsReplay(c) {
		t.Fatalf("non-bool replay flag must be false")
	}
}
