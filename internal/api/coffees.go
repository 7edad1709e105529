package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/raphi011/brewlog/internal/brew"
	"github.com/raphi011/brewlog/internal/fetchcache"
)

const coffeesPath = "/api/v1/coffees"

func coffeePath(id int64) string {
	return fmt.Sprintf("%s/%d", coffeesPath, id)
}

func coffeeQuery(f brew.CoffeeFilters) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Origin != "" {
		q.Set("origin", f.Origin)
	}
	if f.Roaster != "" {
		q.Set("roaster", f.Roaster)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// ListCoffees returns the user's coffees. refresh bypasses the cache.
func (c *Client) ListCoffees(ctx context.Context, f brew.CoffeeFilters, refresh bool) (*brew.CoffeeListResponse, error) {
	var out brew.CoffeeListResponse
	opts := fetchcache.Options{TTL: c.ttl.CoffeeList, Bypass: refresh}
	if err := c.get(ctx, coffeesPath, coffeeQuery(f), opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// coffeeEnvelope accepts both {"coffee": {...}} and a bare coffee.
type coffeeEnvelope struct {
	brew.Coffee
}

func (e *coffeeEnvelope) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Coffee *brew.Coffee `json:"coffee"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Coffee != nil {
		e.Coffee = *wrapped.Coffee
		return nil
	}
	return json.Unmarshal(data, &e.Coffee)
}

// GetCoffee returns a single coffee.
func (c *Client) GetCoffee(ctx context.Context, id int64, refresh bool) (*brew.Coffee, error) {
	var out coffeeEnvelope
	opts := fetchcache.Options{TTL: c.ttl.Coffee, Bypass: refresh}
	if err := c.get(ctx, coffeePath(id), nil, opts, &out); err != nil {
		return nil, err
	}
	return &out.Coffee, nil
}

// CreateCoffee adds a coffee. The service returns the existing coffee when
// an identical one is already stored.
func (c *Client) CreateCoffee(ctx context.Context, req brew.CreateCoffeeRequest) (*brew.Coffee, error) {
	var out coffeeEnvelope
	if err := c.send(ctx, http.MethodPost, coffeesPath, req, &out); err != nil {
		return nil, err
	}
	c.cache.InvalidatePrefix(coffeesPath)
	return &out.Coffee, nil
}

// UpdateCoffee changes a coffee.
func (c *Client) UpdateCoffee(ctx context.Context, id int64, req brew.UpdateCoffeeRequest) (*brew.Coffee, error) {
	var out coffeeEnvelope
	if err := c.send(ctx, http.MethodPut, coffeePath(id), req, &out); err != nil {
		return nil, err
	}
	c.cache.InvalidatePrefix(coffeesPath)
	// brew logs embed their coffee
	c.cache.InvalidatePrefix(brewLogsPath)
	return &out.Coffee, nil
}

// DeleteCoffee removes a coffee.
func (c *Client) DeleteCoffee(ctx context.Context, id int64) error {
	if err := c.send(ctx, http.MethodDelete, coffeePath(id), nil, nil); err != nil {
		return err
	}
	c.cache.InvalidatePrefix(coffeesPath)
	c.cache.InvalidatePrefix(brewLogsPath)
	return nil
}
