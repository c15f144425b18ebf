package apiclient

import (
	"context"
	"net/http"
)

const profilePath = "/users/profile"

// GetProfile fetches the caller's profile. The backend creates an empty one
// on first access.
func (c *Client) GetProfile(ctx context.Context) (*Envelope[Profile], error) {
	return call[Profile](ctx, c, http.MethodGet, profilePath, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Envelope[Profile], error) {
	return call[Profile](ctx, c, http.MethodPut, profilePath, update)
}
