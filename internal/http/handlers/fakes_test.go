package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/http/middleware"
	"github.com/swasth-ai/wellness-backend/internal/services"
)

// ---------- service fakes ----------

type fakeChat struct {
	reply   services.ChatReply
	gotMsg  string
	gotHist []domain.ChatHistoryItem
}

func (f *fakeChat) Reply(_ context.Context, message string, history []domain.ChatHistoryItem) services.ChatReply {
	f.gotMsg, f.gotHist = message, history
	return f.reply
}

type fakeMoods struct {
	logFn     func(ctx context.Context, auth string, e domain.MoodEntry) error
	listFn    func(ctx context.Context, auth, userID string) ([]domain.MoodEntry, error)
	reflectFn func(ctx context.Context, auth, userID string) services.Reflection
	logCalls  int
}

func (f *fakeMoods) Log(ctx context.Context, auth string, e domain.MoodEntry) error {
	f.logCalls++
	if f.logFn == nil {
		return nil
	}
	return f.logFn(ctx, auth, e)
}

func (f *fakeMoods) List(ctx context.Context, auth, userID string) ([]domain.MoodEntry, error) {
	return f.listFn(ctx, auth, userID)
}

func (f *fakeMoods) Reflect(ctx context.Context, auth, userID string) services.Reflection {
	return f.reflectFn(ctx, auth, userID)
}

type fakeNotes struct {
	postFn    func(ctx context.Context, auth string, n domain.EncouragementNote) error
	listFn    func(ctx context.Context, auth string, limit int) ([]json.RawMessage, error)
	postCalls int
}

func (f *fakeNotes) Post(ctx context.Context, auth string, n domain.EncouragementNote) error {
	f.postCalls++
	if f.postFn == nil {
		return nil
	}
	return f.postFn(ctx, auth, n)
}

func (f *fakeNotes) List(ctx context.Context, auth string, limit int) ([]json.RawMessage, error) {
	return f.listFn(ctx, auth, limit)
}

type fakeProgress struct {
	fn func(ctx context.Context, auth, userID string) (domain.Progress, error)
}

func (f fakeProgress) Snapshot(ctx context.Context, auth, userID string) (domain.Progress, error) {
	return f.fn(ctx, auth, userID)
}

type fakeProfile struct {
	fn func(ctx context.Context, auth string, name, password *string) (json.RawMessage, error)
}

func (f fakeProfile) Update(ctx context.Context, auth string, name, password *string) (json.RawMessage, error) {
	return f.fn(ctx, auth, name, password)
}

type ledgerCall struct {
	identity, scope, key string
	status               int
}

type fakeLedger struct{ calls []ledgerCall }

func (f *fakeLedger) Remember(_ context.Context, identity, scope, key string, status int) error {
	f.calls = append(f.calls, ledgerCall{identity, scope, key, status})
	return nil
}

// ---------- router helper ----------

// newTestRouter mounts h behind the identity and idempotency middleware the
// production router uses. replayKeys lists Idempotency-Keys treated as seen.
func newTestRouter(h *Handlers, replayKeys ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	seen := map[string]bool{}
	for _, k := range replayKeys {
		seen[k] = true
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.BearerIdentity())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{},
		func(_ context.Context, _, _, key string) (bool, error) { return seen[key], nil }))

	r.GET("/", h.Root)
	r.POST("/chat", h.Chat)
	r.POST("/profile/update", h.UpdateProfile)
	r.POST("/moods", h.LogMood)
	r.GET("/moods", h.ListMoods)
	r.GET("/moods/reflections", h.MoodReflections)
	r.POST("/encouragement", h.PostEncouragement)
	r.GET("/encouragement", h.ListEncouragement)
	r.GET("/progress", h.Progress)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return er
}

var bearer = map[string]string{"Authorization": "Bearer tok"}
