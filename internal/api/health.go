package api

import (
	"context"
	"net/http"

	"github.com/raphi011/brewlog/internal/brew"
)

// Health checks that the service is up.
func (c *Client) Health(ctx context.Context) (*brew.HealthStatus, error) {
	var out brew.HealthStatus
	if err := c.send(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
