package api

import (
	"context"
	"net/http"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/fetchcache"
)

const mePath = "/api/v1/users/me"

// Me returns the authenticated user. The profile is never served from the
// cache.
func (c *Client) Me(ctx context.Context) (*brew.User, error) {
	var out brew.User
	if err := c.get(ctx, mePath, nil, fetchcache.Options{Bypass: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe updates the authenticated user's profile.
func (c *Client) UpdateMe(ctx context.Context, req brew.UpdateProfileRequest) (*brew.User, error) {
	var out brew.User
	if err := c.send(ctx, http.MethodPut, mePath, req, &out); err != nil {
		return nil, err
	}
	c.cache.Invalidate(mePath)
	return &out, nil
}

// DeleteMe deletes the authenticated user's account.
func (c *Client) DeleteMe(ctx context.Context) error {
	if err := c.send(ctx, http.MethodDelete, mePath, nil, nil); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}
