package api

import (
	"context"
	"net/http"

	"github.com/raphi011/brewlog/internal/brew"
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req brew.LoginRequest) (*brew.AuthResult, error) {
	var out brew.AuthResult
	if err := c.send(ctx, http.MethodPost, "/api/v1/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req brew.RegisterRequest) (*brew.User, error) {
	var out brew.User
	if err := c.send(ctx, http.MethodPost, "/api/v1/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
