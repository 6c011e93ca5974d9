package services

import (
	"context"
	"encoding/json"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/swasth-ai/wellness-backend/internal/domain"
)

// ProfileService forwards profile changes to the identity service. It adds
// no rules beyond requiring the caller's token and remapping fields.
type ProfileService struct {
	// Identity is nil when the store driver has no identity endpoint.
	Identity IdentityGateway
}

// NewProfileService returns a ProfileService; gw may be nil.
func NewProfileService(gw IdentityGateway) *ProfileService {
	return &ProfileService{Identity: gw}
}

// Update changes the name and/or password of the user owning auth. Blank
// fields are left unchanged. Identity-service rejections are returned as
// *upstream.StatusError so the caller can forward them verbatim.
func (s *ProfileService) Update(ctx context.Context, auth string, name, password *string) (json.RawMessage, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "Update")
	defer span.End()

	if strings.TrimSpace(auth) == "" {
		return nil, ErrMissingToken
	}
	if s.Identity == nil {
		return nil, ErrIdentityUnavailable
	}

	var attrs domain.UserAttributes
	if name != nil && strings.TrimSpace(*name) != "" {
		n := *name
		attrs.Name = &n
	}
	if password != nil && *password != "" {
		p := *password
		attrs.Password = &p
	}

	out, err := s.Identity.UpdateUser(ctx, auth, attrs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}
