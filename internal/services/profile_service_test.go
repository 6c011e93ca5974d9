package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/swasth-ai/wellness-backend/internal/upstream"
)

func strptr(s string) *string { return &s }

func TestProfileService_Update_RequiresToken(t *testing.T) {
	gw := &fakeIdentity{}
	_, err := NewProfileService(gw).Update(context.Background(), "", strptr("Asha"), nil)
	if !errors.Is(err, ErrMissingToken) || gw.calls != 0 {
		t.Fatalf("expected ErrMissingToken without calls, got %v (calls=%d)", err, gw.calls)
	}
}

func TestProfileService_Update_NoGateway(t *testing.T) {
	_, err := NewProfileService(nil).Update(context.Background(), "Bearer t", strptr("Asha"), nil)
	if !errors.Is(err, ErrIdentityUnavailable) {
		t.Fatalf("expected ErrIdentityUnavailable, got %v", err)
	}
}

func TestProfileService_Update_SparseAttributes(t *testing.T) {
	gw := &fakeIdentity{out: json.RawMessage(`{"id":"u1"}`)}
	s := NewProfileService(gw)

	out, err := s.Update(context.Background(), "Bearer t", strptr("  Asha "), strptr(""))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if string(out) != `{"id":"u1"}` || gw.gotAuth != "Bearer t" {
		t.Fatalf("out=%s auth=%q", out, gw.gotAuth)
	}
	if gw.gotAttrs.Name == nil || *gw.gotAttrs.Name != "  Asha " || gw.gotAttrs.Password != nil {
		t.Fatalf("attrs = %+v", gw.gotAttrs)
	}

	if _, err := s.Update(context.Background(), "Bearer t", strptr("   "), strptr("n3w-pass")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gw.gotAttrs.Name != nil || gw.gotAttrs.Password == nil || *gw.gotAttrs.Password != "n3w-pass" {
		t.Fatalf("attrs = %+v", gw.gotAttrs)
	}
}

func TestProfileService_Update_PassesStatusErrorThrough(t *testing.T) {
	se := &upstream.StatusError{Status: http.StatusUnprocessableEntity, Body: []byte(`{"msg":"weak password"}`)}
	gw := &fakeIdentity{err: se}
	_, err := NewProfileService(gw).Update(context.Background(), "Bearer t", nil, strptr("x"))

	var got *upstream.StatusError
	if !errors.As(err, &got) || got != se {
		t.Fatalf("expected the identity StatusError, got %v", err)
	}
}
