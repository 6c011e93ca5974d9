package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/swasth-ai/wellness-backend/internal/domain"
	"github.com/swasth-ai/wellness-backend/internal/upstream"
)

// userUpdate is the sparse identity payload: name lives in user metadata
// ("data"), password at the top level. Absent fields are omitted.
type userUpdate struct {
	Data     map[string]string `json:"data,omitempty"`
	Password string            `json:"password,omitempty"`
}

func buildUserUpdate(attrs domain.UserAttributes) userUpdate {
	var u userUpdate
	if attrs.Name != nil && *attrs.Name != "" {
		u.Data = map[string]string{"name": *attrs.Name}
	}
	if attrs.Password != nil && *attrs.Password != "" {
		u.Password = *attrs.Password
	}
	return u
}

// UpdateUser changes the identity of the user the bearer token belongs to
// and returns the identity service's JSON unchanged. A non-2xx answer is
// returned as *upstream.StatusError.
func (c *Client) UpdateUser(ctx context.Context, auth string, attrs domain.UserAttributes) (json.RawMessage, error) {
	resp, err := c.http.Do(ctx, upstream.Request{
		Method: http.MethodPut,
		URL:    c.baseURL + "/auth/v1/user",
		Header: c.headers(auth),
		Body:   buildUserUpdate(attrs),
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("update user: identity service returned invalid JSON")
	}
	return json.RawMessage(resp.Body), nil
}
