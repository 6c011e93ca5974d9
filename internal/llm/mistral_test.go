package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/swasth-ai/wellness-backend/internal/config"
	"github.com/swasth-ai/wellness-backend/internal/upstream"
)

func newMistral(t *testing.T, h http.HandlerFunc) *Mistral {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := config.LLMConfig{URL: srv.URL + "/v1/chat/completions", Model: "mistral-small-latest", APIKey: "sk-test"}
	return NewMistral(cfg, upstream.New("mistral-test", time.Second))
}

func TestMistral_Complete_SendsPayloadAndExtractsReply(t *testing.T) {
	var got completionRequest
	m := newMistral(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Fatalf("authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Take a slow breath."}}]}`))
	})

	reply, err := m.Complete(context.Background(), Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: "hi"},
		},
		MaxTokens: 200,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "Take a slow breath." {
		t.Fatalf("reply = %q", reply)
	}
	if got.Model != "mistral-small-latest" || got.MaxTokens != 200 || len(got.Messages) != 2 || got.Messages[1].Content != "hi" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestMistral_Complete_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"no choices", http.StatusOK, `{"choices":[]}`, ErrEmptyCompletion},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, ErrEmptyCompletion},
		{"malformed json", http.StatusOK, `{"choices":`, nil},
		{"upstream 429", http.StatusTooManyRequests, `{"message":"rate limited"}`, nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m := newMistral(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := m.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.status != http.StatusOK {
				var se *upstream.StatusError
				if !errors.As(err, &se) || se.Status != tc.status {
					t.Fatalf("expected wrapped StatusError %d, got %v", tc.status, err)
				}
			}
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), config.LLMConfig{Provider: "llama"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNew_Mistral(t *testing.T) {
	c, err := New(context.Background(), config.LLMConfig{Provider: config.ProviderMistral, URL: "http://localhost", ChatTimeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c.(*Mistral); !ok {
		t.Fatalf("expected *Mistral, got %T", c)
	}
}
