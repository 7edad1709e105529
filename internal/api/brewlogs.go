package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/fetchcache"
)

const brewLogsPath = "/api/v1/brewlogs"

func brewLogPath(id int64) string {
	return fmt.Sprintf("%s/%d", brewLogsPath, id)
}

func userBrewLogsPath(userID int64) string {
	return fmt.Sprintf("/api/v1/users/%d/brewlogs", userID)
}

func brewLogQuery(f brew.BrewLogFilters) url.Values {
	q := url.Values{}
	if f.CoffeeID > 0 {
		q.Set("coffeeId", strconv.FormatInt(f.CoffeeID, 10))
	}
	if f.BrewMethod != "" {
		q.Set("brewMethod", f.BrewMethod)
	}
	if f.Rating > 0 {
		q.Set("rating", strconv.Itoa(f.Rating))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// ListBrewLogs returns the user's brew logs. When f.UserID is set the
// public brew logs of that user are listed instead.
func (c *Client) ListBrewLogs(ctx context.Context, f brew.BrewLogFilters, refresh bool) (*brew.BrewLogListResponse, error) {
	path := brewLogsPath
	if f.UserID > 0 {
		path = userBrewLogsPath(f.UserID)
	}
	var out brew.BrewLogListResponse
	opts := fetchcache.Options{TTL: c.ttl.BrewLogs, Bypass: refresh}
	if err := c.get(ctx, path, brewLogQuery(f), opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBrewLog returns a single brew log.
func (c *Client) GetBrewLog(ctx context.Context, id int64, refresh bool) (*brew.BrewLog, error) {
	var out brew.BrewLog
	opts := fetchcache.Options{TTL: c.ttl.BrewLog, Bypass: refresh}
	if err := c.get(ctx, brewLogPath(id), nil, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBrewLog logs a brew.
func (c *Client) CreateBrewLog(ctx context.Context, req brew.CreateBrewLogRequest) (*brew.BrewLog, error) {
	var out brew.BrewLog
	if err := c.send(ctx, http.MethodPost, brewLogsPath, req, &out); err != nil {
		return nil, err
	}
	c.invalidateBrewLogs()
	return &out, nil
}

// UpdateBrewLog changes a brew log. Only its owner may update it.
func (c *Client) UpdateBrewLog(ctx context.Context, id int64, req brew.UpdateBrewLogRequest) (*brew.BrewLog, error) {
	var out brew.BrewLog
	if err := c.send(ctx, http.MethodPut, brewLogPath(id), req, &out); err != nil {
		return nil, err
	}
	c.invalidateBrewLogs()
	return &out, nil
}

// DeleteBrewLog removes a brew log.
func (c *Client) DeleteBrewLog(ctx context.Context, id int64) error {
	if err := c.send(ctx, http.MethodDelete, brewLogPath(id), nil, nil); err != nil {
		return err
	}
	c.invalidateBrewLogs()
	return nil
}

func (c *Client) invalidateBrewLogs() {
	c.cache.InvalidatePrefix(brewLogsPath)
	c.cache.InvalidatePrefix("/api/v1/users/")
}
