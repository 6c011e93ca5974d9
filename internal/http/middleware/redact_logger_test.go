package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRedactingLogger_MasksCredentialsAndPII(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := withCapturedLogger(t)

	r := gin.New()
	r.Use(RequestID(), BearerIdentity(), RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Extra-Secret"}}))
	r.GET("/moods", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet,
		"/moods?user_id=123e4567-e89b-12d3-a456-426614174000&email=asha@example.com&phone=212-555-1212", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	req.Header.Set("apikey", "anon-key-value")
	req.Header.Set("X-Extra-Secret", "s3cr3t")
	req.Header.Set("X-Request-ID", "rid-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, leak := range []string{"anon-key-value", "s3cr3t", "asha@example.com", "212-555-1212", "123e4567-e89b-12d3-a456-426614174000", "eyJ"} {
		if strings.Contains(out, leak) {
			t.Fatalf("log leaked %q: %s", leak, out)
		}
	}

	lines := logLines(t, buf)
	last := lines[len(lines)-1]
	if last["level"] != "info" || last["message"] != "http_request" || last["path"] != "/moods" || last["request_id"] != "rid-1" {
		t.Fatalf("access line = %v", last)
	}
	if last["identity"] != "user:u1" {
		t.Fatalf("identity = %v", last["identity"])
	}
	q, _ := last["query"].(string)
	if !strings.Contains(q, "[REDACTED:id]") || !strings.Contains(q, "[REDACTED:email]") || !strings.Contains(q, "[REDACTED:phone]") {
		t.Fatalf("query not scrubbed: %q", q)
	}
}

func TestRedactingLogger_Levels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for status, level := range map[int]string{200: "info", 401: "warn", 500: "error"} {
		buf := withCapturedLogger(t)
		r := gin.New()
		r.Use(RedactingLogger(RedactOptions{}))
		st := status
		r.GET("/x", func(c *gin.Context) { c.Status(st) })
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

		lines := logLines(t, buf)
		if len(lines) != 1 || lines[0]["level"] != level {
			t.Fatalf("status %d: lines %v", status, lines)
		}
	}
}
